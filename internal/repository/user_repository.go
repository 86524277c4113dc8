package repository

import (
	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds an active user by ID
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ? AND is_active = ?", id, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds an active user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? AND is_active = ?", email, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to an active user. Returns
// gorm.ErrRecordNotFound when the user is absent or inactive.
func (r *GormUserRepository) Update(id uuid.UUID, fields map[string]interface{}) (uuid.UUID, error) {
	res := r.db.Model(&models.User{}).
		Where("user_id = ? AND is_active = ?", id, true).
		Updates(fields)
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return id, nil
}

// Delete marks an active user inactive
func (r *GormUserRepository) Delete(id uuid.UUID) (uuid.UUID, error) {
	return r.Update(id, map[string]interface{}{"is_active": false})
}

// ListAuthoredTaskIDs lists the IDs of tasks the user authored
func (r *GormUserRepository) ListAuthoredTaskIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.TaskAuthor{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListAssignedTaskIDs lists the IDs of tasks the user is assigned to
func (r *GormUserRepository) ListAssignedTaskIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.TaskProducer{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
