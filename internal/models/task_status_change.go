package models

import "time"

// TaskStatusChange is one entry of a task's status audit trail. Entries are
// append-only: repeated changes by the same user keep accumulating.
type TaskStatusChange struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	TaskID    uint64     `gorm:"not null;index" json:"task_id"`
	UserID    uint64     `gorm:"not null" json:"user_id"`
	Status    TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
