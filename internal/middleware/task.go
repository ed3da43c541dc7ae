package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uptask-dev/uptask-api/internal/constants"
	"github.com/uptask-dev/uptask-api/internal/database"
	apierrors "github.com/uptask-dev/uptask-api/internal/errors"
	"github.com/uptask-dev/uptask-api/internal/models"
)

// RequireTask resolves the taskId path parameter and checks the task belongs
// to the already-resolved project. A task from another project is reported as
// not found.
func RequireTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		project, exists := GetProject(c)
		if !exists {
			apierrors.InternalError(c, "Project not resolved")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if task.ProjectID != project.ID {
			apierrors.NotFound(c, "Task not found in this project")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the resolved task from context
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := value.(models.Task)
	return task, ok
}
