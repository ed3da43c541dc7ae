package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/uptask-dev/uptask-api/internal/auth"
	"github.com/uptask-dev/uptask-api/internal/database"
	"github.com/uptask-dev/uptask-api/internal/middleware"
	"github.com/uptask-dev/uptask-api/internal/models"
	"github.com/uptask-dev/uptask-api/internal/repository"
	"github.com/uptask-dev/uptask-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubMailer records dispatches instead of talking SMTP.
type stubMailer struct {
	mu            sync.Mutex
	confirmations int
	resets        int
}

func (m *stubMailer) SendConfirmationEmail(email, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations++
	return nil
}

func (m *stubMailer) SendPasswordResetEmail(email, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	return nil
}

func (m *stubMailer) Confirmations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmations
}

type testEnv struct {
	db     *gorm.DB
	mailer *stubMailer
	router *gin.Engine
}

// setupTestEnv builds an in-memory database and a router with the production
// middleware chains and handlers.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskStatusChange{},
		&models.Note{},
	)
	require.NoError(t, err)

	database.SetDB(db)
	require.NoError(t, auth.Init("test-secret"))

	mailer := &stubMailer{}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authService := services.NewAuthService(userRepo, tokenRepo, mailer)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectRepo)
	taskHandler := NewTaskHandler(taskRepo)
	teamHandler := NewTeamHandler(projectRepo, userRepo)
	noteHandler := NewNoteHandler(noteRepo)

	r := gin.New()
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/create-account", authHandler.CreateAccount)
	authGroup.POST("/confirm-account", authHandler.ConfirmAccount)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/request-code", authHandler.RequestConfirmationCode)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/validate-token", authHandler.ValidateToken)
	authGroup.POST("/update-password/:token", authHandler.ResetPassword)
	authGroup.GET("/user", middleware.Authenticate(), authHandler.User)
	authGroup.PUT("/profile", middleware.Authenticate(), authHandler.UpdateProfile)
	authGroup.POST("/update-password", middleware.Authenticate(), authHandler.UpdatePassword)
	authGroup.POST("/check-password", middleware.Authenticate(), authHandler.CheckPassword)

	projects := api.Group("/projects")
	projects.Use(middleware.Authenticate())
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.ListProjects)

	scoped := projects.Group("/:projectId")
	scoped.Use(middleware.RequireProjectAccess())
	scoped.GET("", projectHandler.GetProject)
	scoped.PUT("", middleware.RequireProjectManager(), projectHandler.UpdateProject)
	scoped.DELETE("", middleware.RequireProjectManager(), projectHandler.DeleteProject)
	scoped.POST("/tasks", middleware.RequireProjectManager(), taskHandler.CreateTask)
	scoped.GET("/tasks", taskHandler.ListTasks)

	task := scoped.Group("/tasks/:taskId")
	task.Use(middleware.RequireTask())
	task.GET("", taskHandler.GetTask)
	task.PUT("", middleware.RequireProjectManager(), taskHandler.UpdateTask)
	task.DELETE("", middleware.RequireProjectManager(), taskHandler.DeleteTask)
	task.POST("/status", taskHandler.UpdateStatus)
	task.POST("/notes", noteHandler.CreateNote)
	task.GET("/notes", noteHandler.ListNotes)
	task.DELETE("/notes/:noteId", noteHandler.DeleteNote)

	scoped.POST("/team/find", teamHandler.FindMemberByEmail)
	scoped.GET("/team", teamHandler.GetProjectTeam)
	scoped.POST("/team", teamHandler.AddMemberByID)
	scoped.DELETE("/team/:userId", teamHandler.RemoveMemberByID)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:     db,
		mailer: mailer,
		router: r,
	}
}

// createUser stores a confirmed user with the given password.
func (env testEnv) createUser(t *testing.T, name, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Confirmed:    true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// createUnconfirmedUser stores an unconfirmed user.
func (env testEnv) createUnconfirmedUser(t *testing.T, name, email, password string) *models.User {
	t.Helper()

	user := env.createUser(t, name, email, password)
	require.NoError(t, env.db.Model(user).Update("confirmed", false).Error)
	user.Confirmed = false
	return user
}

// createProject stores a project managed by the given user.
func (env testEnv) createProject(t *testing.T, manager *models.User, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		ProjectName: name,
		ClientName:  "ACME",
		Description: "Test project",
		ManagerID:   manager.ID,
	}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

// addTeamMember attaches a user to a project's team.
func (env testEnv) addTeamMember(t *testing.T, project *models.Project, user *models.User) {
	t.Helper()

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}
	require.NoError(t, env.db.Create(member).Error)
}

// createTask stores a task under a project.
func (env testEnv) createTask(t *testing.T, project *models.Project, name string) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:        name,
		Description: "Test task",
		Status:      models.TaskStatusPending,
		ProjectID:   project.ID,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

// createNote stores a note on a task.
func (env testEnv) createNote(t *testing.T, task *models.Task, author *models.User, content string) *models.Note {
	t.Helper()

	note := &models.Note{
		Content:     content,
		CreatedByID: author.ID,
		TaskID:      task.ID,
	}
	require.NoError(t, env.db.Create(note).Error)
	return note
}

// bearer returns an Authorization header value for the user.
func bearer(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON performs a request with an optional JSON body and auth header.
func (env testEnv) doJSON(t *testing.T, method, path, authHeader string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
