package models

import "github.com/google/uuid"

// TaskAuthor links a task to a user who created it. The pair is fixed at task
// creation and survives soft deletion of either side.
type TaskAuthor struct {
	UserID uuid.UUID `gorm:"type:varchar(36);primarykey" json:"user_id"`
	TaskID uuid.UUID `gorm:"type:varchar(36);primarykey" json:"task_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
