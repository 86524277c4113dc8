package repository

import (
	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/models"
)

// UserRepository defines the interface for user data access. Read and write
// operations only see active users unless noted otherwise.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as
	// gorm.ErrDuplicatedKey.
	Create(user *models.User) error

	// FindByID finds an active user by ID.
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds an active user by email. Deactivated accounts are not
	// visible here, so they cannot authenticate.
	FindByEmail(email string) (*models.User, error)

	// Update applies a partial update to an active user and returns its ID.
	Update(id uuid.UUID, fields map[string]interface{}) (uuid.UUID, error)

	// Delete marks an active user inactive and returns its ID.
	Delete(id uuid.UUID) (uuid.UUID, error)

	// ListAuthoredTaskIDs lists the IDs of tasks the user authored,
	// regardless of the tasks' active flags.
	ListAuthoredTaskIDs(userID uuid.UUID) ([]uuid.UUID, error)

	// ListAssignedTaskIDs lists the IDs of tasks the user is assigned to,
	// regardless of the tasks' active flags.
	ListAssignedTaskIDs(userID uuid.UUID) ([]uuid.UUID, error)
}

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	// Create inserts a task together with one author link and one producer
	// link per producer, atomically. Every referenced user must resolve to an
	// active user or the whole operation rolls back with ErrLinkedUserNotFound.
	Create(authorID uuid.UUID, producerIDs []uuid.UUID, description string) (*models.Task, error)

	// FindByID finds an active task by ID.
	FindByID(id uuid.UUID) (*models.Task, error)

	// Update applies a partial update to an active task and returns its ID.
	Update(id uuid.UUID, fields map[string]interface{}) (uuid.UUID, error)

	// Delete marks an active task inactive and returns its ID.
	Delete(id uuid.UUID) (uuid.UUID, error)

	// Restore reactivates an inactive task and resets its status to Zero.
	// It only matches currently inactive tasks.
	Restore(id uuid.UUID) (uuid.UUID, error)

	// ListAuthorIDs lists the task's author user IDs, regardless of the
	// task's active flag.
	ListAuthorIDs(taskID uuid.UUID) ([]uuid.UUID, error)

	// ListProducerIDs lists the task's producer user IDs, regardless of the
	// task's active flag.
	ListProducerIDs(taskID uuid.UUID) ([]uuid.UUID, error)
}
