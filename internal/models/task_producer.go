package models

import "github.com/google/uuid"

// TaskProducer links a task to a user assigned to work on it.
type TaskProducer struct {
	UserID uuid.UUID `gorm:"type:varchar(36);primarykey" json:"user_id"`
	TaskID uuid.UUID `gorm:"type:varchar(36);primarykey" json:"task_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
