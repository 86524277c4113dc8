package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/nmaslov/taskcrew/internal/models"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := newTestUser(email)
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestTaskRepository_CreateWithLinks(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")
	producerA := createTestUser(t, db, "producer-a@example.com")
	producerB := createTestUser(t, db, "producer-b@example.com")

	task, err := repo.Create(author.ID, []uuid.UUID{producerA.ID, producerB.ID}, "write the report")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, task.ID)
	require.Equal(t, models.StatusZero, task.Status)
	require.True(t, task.IsActive)

	authors, err := repo.ListAuthorIDs(task.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{author.ID}, authors)

	producers, err := repo.ListProducerIDs(task.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uuid.UUID{producerA.ID, producerB.ID}, producers)
}

func TestTaskRepository_CreateUnknownProducer(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")

	_, err := repo.Create(author.ID, []uuid.UUID{uuid.New()}, "write the report")
	require.ErrorIs(t, err, ErrLinkedUserNotFound)

	// Nothing persists when the operation rolls back
	var taskCount, authorLinks, producerLinks int64
	require.NoError(t, db.Model(&models.Task{}).Count(&taskCount).Error)
	require.NoError(t, db.Model(&models.TaskAuthor{}).Count(&authorLinks).Error)
	require.NoError(t, db.Model(&models.TaskProducer{}).Count(&producerLinks).Error)
	require.Zero(t, taskCount)
	require.Zero(t, authorLinks)
	require.Zero(t, producerLinks)
}

func TestTaskRepository_CreateRequiresProducers(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")

	_, err := repo.Create(author.ID, nil, "write the report")
	require.ErrorIs(t, err, ErrLinkedUserNotFound)
}

func TestTaskRepository_CreateDeduplicatesProducers(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")
	producer := createTestUser(t, db, "producer@example.com")

	task, err := repo.Create(author.ID, []uuid.UUID{producer.ID, producer.ID}, "write the report")
	require.NoError(t, err)

	producers, err := repo.ListProducerIDs(task.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{producer.ID}, producers)
}

func TestTaskRepository_InactiveProducerRejected(t *testing.T) {
	db := setupRepoTestDB(t)
	userRepo := NewUserRepository(db)
	taskRepo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")
	producer := createTestUser(t, db, "producer@example.com")

	_, err := userRepo.Delete(producer.ID)
	require.NoError(t, err)

	_, err = taskRepo.Create(author.ID, []uuid.UUID{producer.ID}, "write the report")
	require.ErrorIs(t, err, ErrLinkedUserNotFound)
}

func TestTaskRepository_UpdatePartial(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")
	producer := createTestUser(t, db, "producer@example.com")

	task, err := repo.Create(author.ID, []uuid.UUID{producer.ID}, "write the report")
	require.NoError(t, err)

	id, err := repo.Update(task.ID, map[string]interface{}{"description": "rewrite the report"})
	require.NoError(t, err)
	require.Equal(t, task.ID, id)

	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, "rewrite the report", found.Description)
	require.Equal(t, models.StatusZero, found.Status)
}

func TestTaskRepository_DeleteAndRestore(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")
	producer := createTestUser(t, db, "producer@example.com")

	task, err := repo.Create(author.ID, []uuid.UUID{producer.ID}, "write the report")
	require.NoError(t, err)

	// Move the status forward so restore has something to reset
	_, err = repo.Update(task.ID, map[string]interface{}{"status": models.StatusActive})
	require.NoError(t, err)

	// Restore only matches inactive tasks
	_, err = repo.Restore(task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	id, err := repo.Delete(task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, id)

	_, err = repo.FindByID(task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	id, err = repo.Restore(task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, id)

	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	require.True(t, found.IsActive)
	require.Equal(t, models.StatusZero, found.Status)
}

func TestTaskRepository_ListIDsIgnoreActiveFlag(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	author := createTestUser(t, db, "author@example.com")
	producer := createTestUser(t, db, "producer@example.com")

	task, err := repo.Create(author.ID, []uuid.UUID{producer.ID}, "write the report")
	require.NoError(t, err)

	_, err = repo.Delete(task.ID)
	require.NoError(t, err)

	// Authorization checks still resolve membership on deleted tasks
	authors, err := repo.ListAuthorIDs(task.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{author.ID}, authors)

	producers, err := repo.ListProducerIDs(task.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{producer.ID}, producers)
}
