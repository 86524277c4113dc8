package dto

import (
	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/models"
)

// ShowTask represents a task in API responses
type ShowTask struct {
	TaskID uuid.UUID     `json:"task_id"`
	Task   string        `json:"task"`
	Status models.Status `json:"status"`
}

// UpdatedTaskResponse carries the ID of an updated task
type UpdatedTaskResponse struct {
	UpdatedTaskID uuid.UUID `json:"updated_task_id"`
}

// DeletedTaskResponse carries the ID of a soft-deleted task
type DeletedTaskResponse struct {
	DeletedTaskID uuid.UUID `json:"deleted_task_id"`
}

// RestoredTaskResponse carries the ID of a restored task
type RestoredTaskResponse struct {
	RestoredTaskID uuid.UUID `json:"restored_task_id"`
}

// ToShowTask converts a Task model to ShowTask
func ToShowTask(task models.Task) ShowTask {
	return ShowTask{
		TaskID: task.ID,
		Task:   task.Description,
		Status: task.Status,
	}
}
