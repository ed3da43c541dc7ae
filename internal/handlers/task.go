package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uptask-dev/uptask-api/internal/dto"
	apierrors "github.com/uptask-dev/uptask-api/internal/errors"
	"github.com/uptask-dev/uptask-api/internal/middleware"
	"github.com/uptask-dev/uptask-api/internal/models"
	"github.com/uptask-dev/uptask-api/internal/repository"
)

// TaskHandler coordinates task CRUD within a project.
type TaskHandler struct {
	taskRepo repository.TaskRepository
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskRepo repository.TaskRepository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

type taskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateTask stores a new task under the resolved project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	task := models.Task{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.TaskStatusPending,
		ProjectID:   project.ID,
	}

	if err := h.taskRepo.Create(&task); err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// ListTasks returns the resolved project's tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	tasks, err := h.taskRepo.ListByProject(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns the resolved task with its status history and notes.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not resolved")
		return
	}

	full, err := h.taskRepo.FindByID(task.ID,
		"CompletedBy", "CompletedBy.User", "Notes", "Notes.CreatedBy")
	if err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*full))
}

// UpdateTask changes the task's name and description.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not resolved")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	task.Name = req.Name
	task.Description = req.Description

	if err := h.taskRepo.Update(&task); err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
	})
}

// DeleteTask removes the task, its notes, and its status history.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not resolved")
		return
	}

	if err := h.taskRepo.Delete(task.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// UpdateStatus sets the task status and appends an audit entry recording who
// changed it and to what.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not resolved")
		return
	}

	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type StatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	if !models.ValidTaskStatus(req.Status) {
		apierrors.BadRequest(c, "Invalid status value")
		return
	}

	change := models.TaskStatusChange{
		TaskID: task.ID,
		UserID: user.ID,
		Status: req.Status,
	}

	if err := h.taskRepo.UpdateStatus(&task, &change); err != nil {
		apierrors.InternalError(c, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task status updated",
	})
}
