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
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskAccessDenied = errors.New("user is neither an author nor a producer of this task")
	ErrNotTaskAuthor    = errors.New("only a task author can perform this action")
	ErrAuthorInactive   = errors.New("author must be active")
	ErrProducerNotFound = errors.New("one or more producers do not exist")
	ErrStatusFinal      = errors.New("task status cannot advance further")
)

// TaskService handles task business logic: creation, ownership checks and the
// status lifecycle.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// Create creates a task authored by authorID and assigned to the given
// producers. The author must be an active user.
func (s *TaskService) Create(authorID uuid.UUID, producerIDs []uuid.UUID, description string) (*models.Task, error) {
	if _, err := s.userRepo.FindByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorInactive
		}
		return nil, fmt.Errorf("failed to check author: %w", err)
	}

	task, err := s.taskRepo.Create(authorID, producerIDs, description)
	if err != nil {
		if errors.Is(err, repository.ErrLinkedUserNotFound) {
			return nil, ErrProducerNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get returns an active task to a caller who is one of its authors or
// producers.
func (s *TaskService) Get(taskID, actorID uuid.UUID) (*models.Task, error) {
	if err := s.ensureParticipant(taskID, actorID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// Update applies a partial update to a task. Only authors may edit fields and
// the field set must not be empty.
func (s *TaskService) Update(taskID, actorID uuid.UUID, fields map[string]interface{}) (uuid.UUID, error) {
	if len(fields) == 0 {
		return uuid.Nil, ErrNoFieldsToUpdate
	}
	if err := s.ensureAuthor(taskID, actorID); err != nil {
		return uuid.Nil, err
	}

	id, err := s.taskRepo.Update(taskID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to update task: %w", err)
	}

	return id, nil
}

// AdvanceStatus moves a task one step forward through its lifecycle. Authors
// and producers may advance non-terminal steps; only an author may advance to
// Completed, which also soft-deletes the task.
func (s *TaskService) AdvanceStatus(taskID, actorID uuid.UUID) (uuid.UUID, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find task: %w", err)
	}

	next, ok := task.Status.Next()
	if !ok {
		return uuid.Nil, ErrStatusFinal
	}

	authors, producers, err := s.taskMembers(taskID)
	if err != nil {
		return uuid.Nil, err
	}

	if next == models.StatusCompleted {
		if !containsUUID(authors, actorID) {
			return uuid.Nil, ErrNotTaskAuthor
		}

		if _, err := s.taskRepo.Update(taskID, map[string]interface{}{"status": next}); err != nil {
			return uuid.Nil, fmt.Errorf("failed to advance status: %w", err)
		}

		// Completion retires the task. This is a second store call, not part
		// of the status update's transaction.
		id, err := s.taskRepo.Delete(taskID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to retire completed task: %w", err)
		}
		return id, nil
	}

	if !containsUUID(authors, actorID) && !containsUUID(producers, actorID) {
		return uuid.Nil, ErrTaskAccessDenied
	}

	id, err := s.taskRepo.Update(taskID, map[string]interface{}{"status": next})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to advance status: %w", err)
	}

	return id, nil
}

// Delete soft-deletes a task. Authors only.
func (s *TaskService) Delete(taskID, actorID uuid.UUID) (uuid.UUID, error) {
	if err := s.ensureAuthor(taskID, actorID); err != nil {
		return uuid.Nil, err
	}

	id, err := s.taskRepo.Delete(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return id, nil
}

// Restore reactivates a soft-deleted task and resets its status to Zero.
// Authors only.
func (s *TaskService) Restore(taskID, actorID uuid.UUID) (uuid.UUID, error) {
	if err := s.ensureAuthor(taskID, actorID); err != nil {
		return uuid.Nil, err
	}

	id, err := s.taskRepo.Restore(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to restore task: %w", err)
	}

	return id, nil
}

// taskMembers resolves the author and producer ID sets of a task. The link
// tables are consulted regardless of the task's active flag.
func (s *TaskService) taskMembers(taskID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	authors, err := s.taskRepo.ListAuthorIDs(taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list task authors: %w", err)
	}

	producers, err := s.taskRepo.ListProducerIDs(taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list task producers: %w", err)
	}

	return authors, producers, nil
}

// ensureParticipant verifies that the actor is an author or producer of the task.
func (s *TaskService) ensureParticipant(taskID, actorID uuid.UUID) error {
	authors, producers, err := s.taskMembers(taskID)
	if err != nil {
		return err
	}

	if !containsUUID(authors, actorID) && !containsUUID(producers, actorID) {
		return ErrTaskAccessDenied
	}

	return nil
}

// ensureAuthor verifies that the actor is an author of the task.
func (s *TaskService) ensureAuthor(taskID, actorID uuid.UUID) error {
	authors, err := s.taskRepo.ListAuthorIDs(taskID)
	if err != nil {
		return fmt.Errorf("failed to list task authors: %w", err)
	}

	if !containsUUID(authors, actorID) {
		return ErrNotTaskAuthor
	}

	return nil
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
