package models

// Status is a task's position in its lifecycle. Tasks always start at Zero
// and only move one step forward at a time.
type Status string

const (
	StatusZero      Status = "Zero"
	StatusActive    Status = "Active"
	StatusVerify    Status = "Verify"
	StatusCompleted Status = "Completed"
)

// Next returns the successor status. ok is false when the status is terminal
// or unknown, in which case the receiver is returned unchanged.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusZero:
		return StatusActive, true
	case StatusActive:
		return StatusVerify, true
	case StatusVerify:
		return StatusCompleted, true
	default:
		return s, false
	}
}
