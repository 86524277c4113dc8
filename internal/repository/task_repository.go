package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrLinkedUserNotFound is returned when the author or a producer of a new
	// task does not resolve to an active user.
	ErrLinkedUserNotFound = errors.New("task repository: linked user not found")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a task with its author and producer links in one transaction
func (r *GormTaskRepository) Create(authorID uuid.UUID, producerIDs []uuid.UUID, description string) (*models.Task, error) {
	task := &models.Task{
		Description:  description,
		Status:       models.StatusZero,
		ActiveRecord: models.ActiveRecord{IsActive: true},
	}

	producerIDs = uniqueUUIDs(producerIDs)
	if len(producerIDs) == 0 {
		return nil, fmt.Errorf("%w: no producers given", ErrLinkedUserNotFound)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("user_id = ? AND is_active = ?", authorID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: author %s", ErrLinkedUserNotFound, authorID)
		}

		if err := tx.Model(&models.User{}).
			Where("user_id IN ? AND is_active = ?", producerIDs, true).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(producerIDs) {
			return fmt.Errorf("%w: one or more producers", ErrLinkedUserNotFound)
		}

		if err := tx.Create(task).Error; err != nil {
			return err
		}

		author := models.TaskAuthor{UserID: authorID, TaskID: task.ID}
		if err := tx.Create(&author).Error; err != nil {
			return err
		}

		producers := make([]models.TaskProducer, len(producerIDs))
		for i, producerID := range producerIDs {
			producers[i] = models.TaskProducer{UserID: producerID, TaskID: task.ID}
		}

		return tx.Create(&producers).Error
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// FindByID finds an active task by ID
func (r *GormTaskRepository) FindByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("task_id = ? AND is_active = ?", id, true).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update to an active task. Returns
// gorm.ErrRecordNotFound when the task is absent or inactive.
func (r *GormTaskRepository) Update(id uuid.UUID, fields map[string]interface{}) (uuid.UUID, error) {
	res := r.db.Model(&models.Task{}).
		Where("task_id = ? AND is_active = ?", id, true).
		Updates(fields)
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return id, nil
}

// Delete marks an active task inactive
func (r *GormTaskRepository) Delete(id uuid.UUID) (uuid.UUID, error) {
	return r.Update(id, map[string]interface{}{"is_active": false})
}

// Restore reactivates an inactive task and resets its status to Zero
func (r *GormTaskRepository) Restore(id uuid.UUID) (uuid.UUID, error) {
	res := r.db.Model(&models.Task{}).
		Where("task_id = ? AND is_active = ?", id, false).
		Updates(map[string]interface{}{"is_active": true, "status": models.StatusZero})
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return id, nil
}

// ListAuthorIDs lists the task's author user IDs
func (r *GormTaskRepository) ListAuthorIDs(taskID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.TaskAuthor{}).
		Where("task_id = ?", taskID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListProducerIDs lists the task's producer user IDs
func (r *GormTaskRepository) ListProducerIDs(taskID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.TaskProducer{}).
		Where("task_id = ?", taskID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// uniqueUUIDs removes duplicate values from a slice of UUIDs
func uniqueUUIDs(values []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(values))
	result := make([]uuid.UUID, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
