package models

import "time"

// ActiveRecord is embedded by every persisted model. Rows are never hard
// deleted; IsActive false marks a row as retired while its relations stay
// intact.
type ActiveRecord struct {
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
