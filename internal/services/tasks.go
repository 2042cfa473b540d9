package services

import (
	"errors"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
)

// TaskInput is the payload for creating or updating a task.
type TaskInput struct {
	Title             string            `json:"title"`
	Category          string            `json:"category"`
	EffortWeight      types.FlexFloat64 `json:"effortWeight"`
	AssignedPartnerID string            `json:"assignedPartnerId"`
	Status            string            `json:"status"`
	CompletedByID     string            `json:"completedById"`
}

func (in TaskInput) validate() error {
	if in.Title == "" {
		return types.NewValidation("task title is required")
	}
	if in.EffortWeight.Float64() <= 0 {
		return types.NewValidation("task effort weight must be positive, got %.2f", in.EffortWeight.Float64())
	}
	if in.Status != "" && !models.ValidTaskStatus(in.Status) {
		return types.NewValidation("unknown task status '%s'", in.Status)
	}
	return nil
}

// CreateTasks adds tasks to a project and resyncs its financials, all in one
// transaction. Rejected with a conflict on locked projects.
func CreateTasks(db *gorm.DB, projectID string, inputs []TaskInput) ([]models.Task, error) {
	if len(inputs) == 0 {
		return nil, types.NewValidation("at least one task is required")
	}
	for _, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, err
		}
	}

	var tasks []models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; tasks are frozen", projectID)
		}

		tasks = make([]models.Task, 0, len(inputs))
		for _, in := range inputs {
			status := in.Status
			if status == "" {
				status = models.TaskStatusBacklog
			}
			tasks = append(tasks, models.Task{
				ProjectID:         project.ID,
				Title:             in.Title,
				Category:          in.Category,
				EffortWeight:      in.EffortWeight.Float64(),
				AssignedPartnerID: in.AssignedPartnerID,
				Status:            status,
				CompletedByID:     in.CompletedByID,
			})
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return err
		}

		_, err = syncFinancialsTx(tx, project)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask rewrites a task's attributes and resyncs the project financials.
func UpdateTask(db *gorm.DB, taskID string, input TaskInput) (*models.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound("task", taskID)
			}
			return err
		}

		project, err := lockProject(tx, task.ProjectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; tasks are frozen", project.ID)
		}

		task.Title = input.Title
		task.Category = input.Category
		task.EffortWeight = input.EffortWeight.Float64()
		task.AssignedPartnerID = input.AssignedPartnerID
		if input.Status != "" {
			task.Status = input.Status
		}
		task.CompletedByID = input.CompletedByID
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		_, err = syncFinancialsTx(tx, project)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and resyncs the project financials.
func DeleteTask(db *gorm.DB, taskID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ?", taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound("task", taskID)
			}
			return err
		}

		project, err := lockProject(tx, task.ProjectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; tasks are frozen", project.ID)
		}

		if err := tx.Delete(&task).Error; err != nil {
			return err
		}

		_, err = syncFinancialsTx(tx, project)
		return err
	})
}
