package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses
const (
	TaskStatusBacklog    = "BACKLOG"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusReview     = "REVIEW"
	TaskStatusDone       = "DONE"
)

// Task is one unit of project work. Category is a free-form key into the
// project's weight mapping; tasks with no category land in an unweighted
// bucket. EffortWeight is relative effort, not hours.
type Task struct {
	ID                string  `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID         string  `gorm:"type:char(36);not null;index" json:"projectId"`
	Title             string  `gorm:"size:255;not null" json:"title"`
	Category          string  `gorm:"size:255" json:"category"`
	EffortWeight      float64 `gorm:"type:decimal(10,2);not null;default:1" json:"effortWeight"`
	AssignedPartnerID string  `gorm:"type:char(36);index" json:"assignedPartnerId,omitempty"`
	Status            string  `gorm:"size:32;not null;default:'BACKLOG'" json:"status"`

	// CompletedByID is a user id, not a partner id. On DONE tasks the credit
	// goes to the partner owned by that user, falling back to the assignee.
	CompletedByID string `gorm:"type:char(36)" json:"completedById,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// BeforeCreate assigns a UUID when none was provided
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}
