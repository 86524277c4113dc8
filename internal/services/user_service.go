package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/models"
	"github.com/nmaslov/taskcrew/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotAccountOwner  = errors.New("users can only manage their own account")
	ErrNoFieldsToUpdate = errors.New("at least one parameter must be provided")
)

// UserService handles user account business logic.
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new active user with a hashed password.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
		ActiveRecord: models.ActiveRecord{IsActive: true},
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Get retrieves an active user by ID.
func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// Update applies a partial update to the caller's own account and returns the
// updated user ID. The field set must not be empty.
func (s *UserService) Update(actorID, targetID uuid.UUID, fields map[string]interface{}) (uuid.UUID, error) {
	if len(fields) == 0 {
		return uuid.Nil, ErrNoFieldsToUpdate
	}
	if actorID != targetID {
		return uuid.Nil, ErrNotAccountOwner
	}

	id, err := s.userRepo.Update(targetID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrUserNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, fmt.Errorf("failed to update user: %w", err)
	}

	return id, nil
}

// Delete soft-deletes the caller's own account and returns the deleted user ID.
func (s *UserService) Delete(actorID, targetID uuid.UUID) (uuid.UUID, error) {
	if actorID != targetID {
		return uuid.Nil, ErrNotAccountOwner
	}

	id, err := s.userRepo.Delete(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return id, nil
}
