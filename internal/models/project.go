package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ProjectName string         `gorm:"type:varchar(255);not null" json:"projectName"`
	ClientName  string         `gorm:"type:varchar(255);not null" json:"clientName"`
	Description string         `gorm:"type:text;not null" json:"description"`
	ManagerID   uint64         `gorm:"not null" json:"manager"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager User            `gorm:"foreignKey:ManagerID" json:"-"`
	Team    []ProjectMember `gorm:"foreignKey:ProjectID" json:"team,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
