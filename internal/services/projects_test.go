package services_test

import (
	"testing"

	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/types"
)

// TestCreateProject checks creation with weights and leads.
func TestCreateProject(t *testing.T) {
	db := setupTestDB(t)
	createTestPartner(t, db, "p1", "u1", "Partner One")

	project, err := services.CreateProject(db, services.ProjectInput{
		Name:          "website rebuild",
		TotalValue:    50000,
		Weights:       map[string]float64{"planning": 15, "execution": 40, "qa": 45},
		ProjectLeadID: "p1",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if project.ID == "" {
		t.Error("Expected a generated project id")
	}
	if project.IsLocked {
		t.Error("Expected new project unlocked")
	}

	weights, err := project.Weights.Map()
	if err != nil {
		t.Fatalf("Failed to decode weights: %v", err)
	}
	if weights["execution"] != 40 {
		t.Errorf("Expected execution weight 40, got %v", weights["execution"])
	}
}

// TestCreateProjectValidation covers the input rejection paths.
func TestCreateProjectValidation(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateProject(db, services.ProjectInput{}); !types.IsValidation(err) {
		t.Errorf("Expected validation error for missing name, got %v", err)
	}
	_, err := services.CreateProject(db, services.ProjectInput{Name: "p", TotalValue: -1})
	if !types.IsValidation(err) {
		t.Errorf("Expected validation error for negative total value, got %v", err)
	}
	_, err = services.CreateProject(db, services.ProjectInput{
		Name: "p", Weights: map[string]float64{"dev": -10},
	})
	if !types.IsValidation(err) {
		t.Errorf("Expected validation error for negative weight, got %v", err)
	}
}

// TestProjectReadsUnknown checks the not-found mapping on every read path.
func TestProjectReadsUnknown(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.GetProject(db, "nope"); !types.IsNotFound(err) {
		t.Errorf("GetProject: expected not-found, got %v", err)
	}
	if _, err := services.GetContributions(db, "nope"); !types.IsNotFound(err) {
		t.Errorf("GetContributions: expected not-found, got %v", err)
	}
	if _, err := services.GetFinancial(db, "nope"); !types.IsNotFound(err) {
		t.Errorf("GetFinancial: expected not-found, got %v", err)
	}
	if _, err := services.GetPayouts(db, "nope"); !types.IsNotFound(err) {
		t.Errorf("GetPayouts: expected not-found, got %v", err)
	}
}

// TestGetFinancialBeforeSync checks that a project without a snapshot maps to
// not-found rather than an empty row.
func TestGetFinancialBeforeSync(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, nil, nil)

	if _, err := services.GetFinancial(db, project.ID); !types.IsNotFound(err) {
		t.Errorf("Expected not-found before first sync, got %v", err)
	}
}
