package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uptask-dev/uptask-api/internal/config"
	"github.com/uptask-dev/uptask-api/internal/database"
	"github.com/uptask-dev/uptask-api/internal/handlers"
	"github.com/uptask-dev/uptask-api/internal/middleware"
	"github.com/uptask-dev/uptask-api/internal/repository"
	"github.com/uptask-dev/uptask-api/internal/services"
)

// New builds the engine with the full route table. The database must be
// connected before calling.
func New(cfg *config.Config, mailer services.Mailer) *gin.Engine {
	db := database.GetDB()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authService := services.NewAuthService(userRepo, tokenRepo, mailer)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	teamHandler := handlers.NewTeamHandler(projectRepo, userRepo)
	noteHandler := handlers.NewNoteHandler(noteRepo)

	r := gin.Default()

	// Single allowed front-end origin
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/create-account", authHandler.CreateAccount)
			auth.POST("/confirm-account", authHandler.ConfirmAccount)
			auth.POST("/login", authHandler.Login)
			auth.POST("/request-code", authHandler.RequestConfirmationCode)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/validate-token", authHandler.ValidateToken)
			auth.POST("/update-password/:token", authHandler.ResetPassword)

			auth.GET("/user", middleware.Authenticate(), authHandler.User)
			auth.PUT("/profile", middleware.Authenticate(), authHandler.UpdateProfile)
			auth.POST("/update-password", middleware.Authenticate(), authHandler.UpdatePassword)
			auth.POST("/check-password", middleware.Authenticate(), authHandler.CheckPassword)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.Authenticate())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)

			scoped := projects.Group("/:projectId")
			scoped.Use(middleware.RequireProjectAccess())
			{
				scoped.GET("", projectHandler.GetProject)
				scoped.PUT("", middleware.RequireProjectManager(), projectHandler.UpdateProject)
				scoped.DELETE("", middleware.RequireProjectManager(), projectHandler.DeleteProject)

				scoped.POST("/tasks", middleware.RequireProjectManager(), taskHandler.CreateTask)
				scoped.GET("/tasks", taskHandler.ListTasks)

				task := scoped.Group("/tasks/:taskId")
				task.Use(middleware.RequireTask())
				{
					task.GET("", taskHandler.GetTask)
					task.PUT("", middleware.RequireProjectManager(), taskHandler.UpdateTask)
					task.DELETE("", middleware.RequireProjectManager(), taskHandler.DeleteTask)
					task.POST("/status", taskHandler.UpdateStatus)

					task.POST("/notes", noteHandler.CreateNote)
					task.GET("/notes", noteHandler.ListNotes)
					task.DELETE("/notes/:noteId", noteHandler.DeleteNote)
				}

				scoped.POST("/team/find", teamHandler.FindMemberByEmail)
				scoped.GET("/team", teamHandler.GetProjectTeam)
				scoped.POST("/team", teamHandler.AddMemberByID)
				scoped.DELETE("/team/:userId", teamHandler.RemoveMemberByID)
			}
		}
	}

	return r
}
