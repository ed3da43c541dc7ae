package models

import "time"

type TokenPurpose string

const (
	TokenPurposeConfirmation  TokenPurpose = "confirmation"
	TokenPurposePasswordReset TokenPurpose = "password_reset"
)

// Token is a single-use code mailed to a user for account confirmation or
// password reset. Consumed tokens are deleted; expired ones are treated as
// absent at lookup time.
type Token struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	Code      string       `gorm:"type:varchar(10);index;not null" json:"token"`
	Purpose   TokenPurpose `gorm:"type:varchar(20);not null" json:"purpose"`
	UserID    uint64       `gorm:"not null" json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `gorm:"not null" json:"expires_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
