package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/uptask-dev/uptask-api/internal/auth"
	"github.com/uptask-dev/uptask-api/internal/constants"
	"github.com/uptask-dev/uptask-api/internal/models"
	"github.com/uptask-dev/uptask-api/internal/repository"
	"github.com/uptask-dev/uptask-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("user is already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrTokenInvalid         = errors.New("token is not valid")
	ErrAccountNotConfirmed  = errors.New("account has not been confirmed, we have sent a confirmation email")
	ErrAlreadyConfirmed     = errors.New("user is already confirmed")
	ErrInvalidPassword      = errors.New("password is incorrect")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account, credential, and token workflows.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	mailer    Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, mailer Mailer) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register stores a new unconfirmed user and mails a confirmation code.
// The raw code never travels back to the caller.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.issueToken(user, models.TokenPurposeConfirmation); err != nil {
		return nil, err
	}

	return user, nil
}

// ConfirmAccount consumes a confirmation token and marks the account
// confirmed. A consumed or expired token behaves like a missing one.
func (s *AuthService) ConfirmAccount(code string) error {
	token, err := s.tokenRepo.FindValid(code, models.TokenPurposeConfirmation)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}

	return s.tokenRepo.ConfirmAccount(token)
}

// Login verifies credentials and returns a signed session token. Logging in
// to an unconfirmed account reissues the confirmation email as a side effect
// and still fails.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Confirmed {
		if err := s.issueToken(user, models.TokenPurposeConfirmation); err != nil {
			return "", err
		}
		return "", ErrAccountNotConfirmed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	return auth.GenerateJWT(user.ID)
}

// RequestConfirmationCode reissues a confirmation token for an unconfirmed
// account.
func (s *AuthService) RequestConfirmationCode(email string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Confirmed {
		return ErrAlreadyConfirmed
	}

	return s.issueToken(user, models.TokenPurposeConfirmation)
}

// ForgotPassword issues a password reset token and mails it.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	return s.issueToken(user, models.TokenPurposePasswordReset)
}

// ValidateToken checks that a reset token exists and is still valid without
// consuming it.
func (s *AuthService) ValidateToken(code string) error {
	if _, err := s.tokenRepo.FindValid(code, models.TokenPurposePasswordReset); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(code, password string) error {
	token, err := s.tokenRepo.FindValid(code, models.TokenPurposePasswordReset)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	return s.tokenRepo.ResetPassword(token, string(hashedPassword))
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the user's name and email. The new email must not
// belong to anyone else.
func (s *AuthService) UpdateProfile(user *models.User, name, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(email)
	if err == nil && existing.ID != user.ID {
		return ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	user.Name = name
	user.Email = email
	return s.userRepo.Update(user)
}

// UpdatePassword changes the password after verifying the current one.
func (s *AuthService) UpdatePassword(userID uint64, currentPassword, password string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Update(user)
}

// CheckPassword verifies the user's password without changing anything.
func (s *AuthService) CheckPassword(userID uint64, password string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// issueToken stores a fresh single-use code and dispatches the matching
// email. Delivery failures are logged, never surfaced.
func (s *AuthService) issueToken(user *models.User, purpose models.TokenPurpose) error {
	code, err := utils.GenerateTokenCode()
	if err != nil {
		return err
	}

	token := &models.Token{
		Code:      code,
		Purpose:   purpose,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(constants.TokenTTL),
	}

	if err := s.tokenRepo.Create(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	go func(email, name, code string) {
		var err error
		if purpose == models.TokenPurposePasswordReset {
			err = s.mailer.SendPasswordResetEmail(email, name, code)
		} else {
			err = s.mailer.SendConfirmationEmail(email, name, code)
		}
		if err != nil {
			log.Printf("failed to send %s email to %s: %v", purpose, email, err)
		}
	}(user.Email, user.Name, code)

	return nil
}
