package services

import (
	"errors"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
)

// ProjectInput is the payload for creating a project.
type ProjectInput struct {
	Name          string             `json:"name"`
	TotalValue    types.FlexFloat64  `json:"totalValue"`
	Weights       map[string]float64 `json:"weights"`
	ProjectLeadID string             `json:"projectLeadId"`
	TechLeadID    string             `json:"techLeadId"`
	CommsLeadID   string             `json:"commsLeadId"`
	QALeadID      string             `json:"qaLeadId"`
	SalesLeadID   string             `json:"salesLeadId"`
}

// CreateProject validates and stores a new project.
func CreateProject(db *gorm.DB, input ProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, types.NewValidation("project name is required")
	}
	if input.TotalValue.Float64() < 0 {
		return nil, types.NewValidation("project total value must be non-negative, got %.2f", input.TotalValue.Float64())
	}
	for category, weight := range input.Weights {
		if weight < 0 {
			return nil, types.NewValidation("weight for category '%s' must be non-negative, got %.2f", category, weight)
		}
	}

	weights, err := models.NewWeights(input.Weights)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:          input.Name,
		TotalValue:    round2(input.TotalValue.Float64()),
		Weights:       weights,
		ProjectLeadID: input.ProjectLeadID,
		TechLeadID:    input.TechLeadID,
		CommsLeadID:   input.CommsLeadID,
		QALeadID:      input.QALeadID,
		SalesLeadID:   input.SalesLeadID,
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject loads one project by id.
func GetProject(db *gorm.DB, projectID string) (*models.Project, error) {
	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound("project", projectID)
		}
		return nil, err
	}
	return &project, nil
}

// GetContributions returns the stored contribution set for a project.
func GetContributions(db *gorm.DB, projectID string) ([]models.Contribution, error) {
	if _, err := GetProject(db, projectID); err != nil {
		return nil, err
	}
	var contributions []models.Contribution
	err := db.Where("project_id = ?", projectID).
		Order("partner_id").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

// GetFinancial returns the latest financial snapshot for a project.
func GetFinancial(db *gorm.DB, projectID string) (*FinancialSnapshot, error) {
	project, err := GetProject(db, projectID)
	if err != nil {
		return nil, err
	}
	var fin models.Financial
	if err := db.Where("project_id = ?", projectID).First(&fin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound("financial snapshot for project", projectID)
		}
		return nil, err
	}
	return &FinancialSnapshot{Financial: fin, TotalValue: project.TotalValue}, nil
}

// GetPayouts returns the payout rows generated at finalization.
func GetPayouts(db *gorm.DB, projectID string) ([]models.Payout, error) {
	if _, err := GetProject(db, projectID); err != nil {
		return nil, err
	}
	var payouts []models.Payout
	err := db.Where("project_id = ?", projectID).
		Order("partner_id").
		Find(&payouts).Error
	if err != nil {
		return nil, err
	}
	return payouts, nil
}
