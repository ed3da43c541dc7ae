package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uptask-dev/uptask-api/internal/dto"
	apierrors "github.com/uptask-dev/uptask-api/internal/errors"
	"github.com/uptask-dev/uptask-api/internal/middleware"
	"github.com/uptask-dev/uptask-api/internal/models"
	"github.com/uptask-dev/uptask-api/internal/repository"
	"gorm.io/gorm"
)

// NoteHandler coordinates notes attached to a task.
type NoteHandler struct {
	noteRepo repository.NoteRepository
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteRepo repository.NoteRepository) *NoteHandler {
	return &NoteHandler{noteRepo: noteRepo}
}

// CreateNote stores a note on the resolved task, authored by the caller.
func (h *NoteHandler) CreateNote(c *gin.Context) {
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

	type CreateNoteRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	note := models.Note{
		Content:     req.Content,
		CreatedByID: user.ID,
		TaskID:      task.ID,
	}

	if err := h.noteRepo.Create(&note); err != nil {
		apierrors.InternalError(c, "Failed to create note")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Note created successfully",
	})
}

// ListNotes returns the resolved task's notes.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not resolved")
		return
	}

	notes, err := h.noteRepo.ListByTask(task.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notes")
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTOs(notes))
}

// DeleteNote removes a note. Only its author may delete it.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	noteID, err := strconv.ParseUint(c.Param("noteId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := h.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Note not found")
		} else {
			apierrors.InternalError(c, "")
		}
		return
	}

	if note.CreatedByID != user.ID {
		apierrors.Forbidden(c, "Only the note's author can delete it")
		return
	}

	if err := h.noteRepo.Delete(note.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
	})
}
