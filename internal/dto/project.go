package dto

import (
	"time"

	"github.com/uptask-dev/uptask-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	ProjectName string    `json:"projectName"`
	ClientName  string    `json:"clientName"`
	Description string    `json:"description"`
	Manager     uint64    `json:"manager"`
	Tasks       []TaskDTO `json:"tasks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Preloaded tasks are
// included; an empty relation stays absent from the JSON.
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		ProjectName: project.ProjectName,
		ClientName:  project.ClientName,
		Description: project.Description,
		Manager:     project.ManagerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if len(project.Tasks) > 0 {
		dto.Tasks = make([]TaskDTO, len(project.Tasks))
		for i, task := range project.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}
