package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptask-dev/uptask-api/internal/dto"
	apierrors "github.com/uptask-dev/uptask-api/internal/errors"
	"github.com/uptask-dev/uptask-api/internal/middleware"
	"github.com/uptask-dev/uptask-api/internal/models"
	"github.com/uptask-dev/uptask-api/internal/repository"
	"gorm.io/gorm"
)

// TeamHandler coordinates project team membership.
type TeamHandler struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TeamHandler {
	return &TeamHandler{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// FindMemberByEmail looks up a user by email for the add-member flow.
func (h *TeamHandler) FindMemberByEmail(c *gin.Context) {
	type FindMemberRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req FindMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	user, err := h.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetProjectTeam lists the resolved project's team members.
func (h *TeamHandler) GetProjectTeam(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	members, err := h.projectRepo.ListMembers(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch team")
		return
	}

	users := make([]models.User, len(members))
	for i, member := range members {
		users[i] = member.User
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// AddMemberByID adds a user to the project team. Adding an existing member
// is a conflict, not an upsert.
func (h *TeamHandler) AddMemberByID(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	type AddMemberRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	user, err := h.userRepo.FindByID(req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, "")
		}
		return
	}

	if _, err := h.projectRepo.FindMember(project.ID, user.ID); err == nil {
		apierrors.Conflict(c, "User is already on the project")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		apierrors.InternalError(c, "")
		return
	}

	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}

	if err := h.projectRepo.AddMember(&member); err != nil {
		apierrors.InternalError(c, "Failed to add member")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User added successfully",
	})
}

// RemoveMemberByID removes a user from the project team. Removing someone
// who is not a member is a conflict.
func (h *TeamHandler) RemoveMemberByID(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not resolved")
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if _, err := h.projectRepo.FindMember(project.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.Conflict(c, "User is not part of the project")
		} else {
			apierrors.InternalError(c, "")
		}
		return
	}

	if err := h.projectRepo.RemoveMember(project.ID, userID); err != nil {
		apierrors.InternalError(c, "Failed to remove member")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User removed successfully",
	})
}
