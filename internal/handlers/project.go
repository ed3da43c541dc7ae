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

// ProjectHandler coordinates project CRUD.
type ProjectHandler struct {
	projectRepo repository.ProjectRepository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectRepo repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

type projectRequest struct {
	ProjectName string `json:"projectName" binding:"required"`
	ClientName  string `json:"clientName" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateProject stores a new project managed by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	project := models.Project{
		ProjectName: req.ProjectName,
		ClientName:  req.ClientName,
		Description: req.Description,
		ManagerID:   user.ID,
	}

	if err := h.projectRepo.Create(&project); err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(project))
}

// ListProjects returns the union of projects the caller manages and projects
// where the caller is a team member.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectRepo.ListForUser(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns the resolved project with its tasks.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	// Reload with tasks; the resolver fetches the bare row.
	full, err := h.projectRepo.FindByID(project.ID, "Tasks")
	if err != nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*full))
}

// UpdateProject changes the project's name, client, and description. The
// manager reference is not reassignable.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	project.ProjectName = req.ProjectName
	project.ClientName = req.ClientName
	project.Description = req.Description

	if err := h.projectRepo.Update(&project); err != nil {
		apierrors.InternalError(c, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
	})
}

// DeleteProject removes the project and everything hanging off it.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	if err := h.projectRepo.Delete(project.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}
