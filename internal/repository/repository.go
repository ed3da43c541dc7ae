package repository

import (
	"github.com/uptask-dev/uptask-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// TokenRepository defines the interface for single-use token data access
type TokenRepository interface {
	// Create stores a freshly issued token
	Create(token *models.Token) error

	// FindValid finds an unexpired token by code and purpose
	FindValid(code string, purpose models.TokenPurpose) (*models.Token, error)

	// ConfirmAccount flips the token's user to confirmed and deletes the
	// token within a single transaction
	ConfirmAccount(token *models.Token) error

	// ResetPassword stores the new password hash for the token's user and
	// deletes the token within a single transaction
	ResetPassword(token *models.Token, passwordHash string) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects the user manages or is a team member of
	ListForUser(userID uint64) ([]models.Project, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete removes a project together with its tasks, their status
	// history, and their notes
	Delete(id uint64) error

	// AddMember adds a team member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a team member from a project
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific team membership
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists a project's team with users preloaded
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks in creation order
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task together with its notes and status history
	Delete(id uint64) error

	// UpdateStatus sets the task status and appends an audit entry within
	// a single transaction
	UpdateStatus(task *models.Task, change *models.TaskStatusChange) error
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a new note
	Create(note *models.Note) error

	// FindByID finds a note by ID
	FindByID(id uint64) (*models.Note, error)

	// ListByTask lists a task's notes with authors preloaded
	ListByTask(taskID uint64) ([]models.Note, error)

	// Delete removes a note
	Delete(id uint64) error
}
