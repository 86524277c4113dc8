package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey;column:task_id" json:"task_id"`
	Description string    `gorm:"type:text;not null" json:"task"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'Zero'" json:"status"`
	ActiveRecord

	// Relations
	Authors   []TaskAuthor   `gorm:"foreignKey:TaskID" json:"authors,omitempty"`
	Producers []TaskProducer `gorm:"foreignKey:TaskID" json:"producers,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
