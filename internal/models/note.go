package models

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	CreatedByID uint64         `gorm:"not null" json:"createdBy"`
	TaskID      uint64         `gorm:"not null;index" json:"task"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"-"`
	Task      Task `gorm:"foreignKey:TaskID" json:"-"`
}
