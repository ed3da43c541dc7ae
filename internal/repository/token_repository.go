package repository

import (
	"time"

	"github.com/uptask-dev/uptask-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create stores a freshly issued token
func (r *GormTokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

// FindValid finds an unexpired token by code and purpose. Expired tokens and
// tokens issued for the other purpose behave exactly like missing ones.
func (r *GormTokenRepository) FindValid(code string, purpose models.TokenPurpose) (*models.Token, error) {
	var token models.Token
	err := r.db.
		Where("code = ? AND purpose = ? AND expires_at > ?", code, purpose, time.Now()).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// ConfirmAccount flips the token's user to confirmed and deletes the token.
// Both writes commit together or not at all.
func (r *GormTokenRepository) ConfirmAccount(token *models.Token) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("confirmed", true).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Token{}, token.ID).Error
	})
}

// ResetPassword stores the new password hash for the token's user and deletes
// the token. Both writes commit together or not at all.
func (r *GormTokenRepository) ResetPassword(token *models.Token, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("password_hash", passwordHash).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Token{}, token.ID).Error
	})
}
