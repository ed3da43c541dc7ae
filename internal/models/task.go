package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusOnHold      TaskStatus = "onHold"
	TaskStatusInProgress  TaskStatus = "inProgress"
	TaskStatusUnderReview TaskStatus = "underReview"
	TaskStatusCompleted   TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the allowed status values.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusOnHold, TaskStatusInProgress,
		TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ProjectID   uint64         `gorm:"not null;index" json:"project"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project     Project            `gorm:"foreignKey:ProjectID" json:"-"`
	CompletedBy []TaskStatusChange `gorm:"foreignKey:TaskID" json:"completedBy,omitempty"`
	Notes       []Note             `gorm:"foreignKey:TaskID" json:"notes,omitempty"`
}
