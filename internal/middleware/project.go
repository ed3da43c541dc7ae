package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uptask-dev/uptask-api/internal/constants"
	"github.com/uptask-dev/uptask-api/internal/database"
	apierrors "github.com/uptask-dev/uptask-api/internal/errors"
	"github.com/uptask-dev/uptask-api/internal/models"
	"gorm.io/gorm"
)

// RequireProjectAccess resolves the projectId path parameter and checks that
// the requester is the manager or a team member. Denial is reported as 404 to
// avoid leaking project existence.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if project.ManagerID != user.ID {
			var member models.ProjectMember
			err := database.GetDB().
				Where("project_id = ? AND user_id = ?", projectID, user.ID).
				First(&member).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					apierrors.NotFound(c, "Project not found")
				} else {
					apierrors.InternalError(c, "")
				}
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireProjectManager allows only the project's manager through. Team
// members get a plain 403: reaching this gate already proved they can see the
// project.
func RequireProjectManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		project, exists := GetProject(c)
		if !exists {
			apierrors.InternalError(c, "Project not resolved")
			c.Abort()
			return
		}

		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if project.ManagerID != user.ID {
			apierrors.Forbidden(c, "Only the project manager can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the resolved project from context
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}

	project, ok := value.(models.Project)
	return project, ok
}
