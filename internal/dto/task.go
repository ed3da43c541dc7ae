package dto

import (
	"time"

	"github.com/uptask-dev/uptask-api/internal/models"
)

// StatusChangeDTO is one completedBy audit entry in API responses
type StatusChangeDTO struct {
	User   UserDTO           `json:"user"`
	Status models.TaskStatus `json:"status"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedBy UserDTO   `json:"createdBy"`
	Task      uint64    `json:"task"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Project     uint64            `json:"project"`
	Status      models.TaskStatus `json:"status"`
	CompletedBy []StatusChangeDTO `json:"completedBy,omitempty"`
	Notes       []NoteDTO         `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO. Preloaded status history and
// notes are included.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Project:     task.ProjectID,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if len(task.CompletedBy) > 0 {
		dto.CompletedBy = make([]StatusChangeDTO, len(task.CompletedBy))
		for i, change := range task.CompletedBy {
			dto.CompletedBy[i] = StatusChangeDTO{
				User:   ToUserDTO(change.User),
				Status: change.Status,
			}
		}
	}

	if len(task.Notes) > 0 {
		dto.Notes = make([]NoteDTO, len(task.Notes))
		for i, note := range task.Notes {
			dto.Notes[i] = ToNoteDTO(note)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID,
		Content:   note.Content,
		CreatedBy: ToUserDTO(note.CreatedBy),
		Task:      note.TaskID,
		CreatedAt: note.CreatedAt,
	}
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ToNoteDTO(note)
	}
	return dtos
}
