package services_test

import (
	"testing"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/types"
)

// TestCreateTasksResyncsFinancials checks that a task batch lands together
// with a refreshed contribution set and financial snapshot.
func TestCreateTasksResyncsFinancials(t *testing.T) {
	db := setupTestDB(t)
	createTestPartner(t, db, "p1", "u1", "Partner One")
	createTestPartner(t, db, "p2", "u2", "Partner Two")
	project := createTestProject(t, db, map[string]float64{"dev": 100}, nil)
	seedTransaction(t, db, project.ID, 10000, models.TransactionIncome)

	tasks, err := services.CreateTasks(db, project.ID, []services.TaskInput{
		{Title: "build", Category: "dev", EffortWeight: 6, AssignedPartnerID: "p1"},
		{Title: "review", Category: "dev", EffortWeight: 4, AssignedPartnerID: "p2", Status: models.TaskStatusReview},
	})
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Status != models.TaskStatusBacklog {
		t.Errorf("Expected default status BACKLOG, got %s", tasks[0].Status)
	}

	stored := loadContributions(t, db, project.ID)
	if !almostEqual(stored["p1"], 60) || !almostEqual(stored["p2"], 40) {
		t.Errorf("Expected contributions 60/40 after create, got %v", stored)
	}

	var fin models.Financial
	if err := db.Where("project_id = ?", project.ID).First(&fin).Error; err != nil {
		t.Fatalf("Expected a financial snapshot after task create: %v", err)
	}
	if !almostEqual(fin.ActualBalance, 10000) {
		t.Errorf("Expected snapshot balance 10000, got %.2f", fin.ActualBalance)
	}
}

// TestCreateTasksValidation covers the input rejection paths.
func TestCreateTasksValidation(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, nil, nil)

	cases := []struct {
		name  string
		input services.TaskInput
	}{
		{"missing title", services.TaskInput{EffortWeight: 1}},
		{"zero effort", services.TaskInput{Title: "t", EffortWeight: 0}},
		{"negative effort", services.TaskInput{Title: "t", EffortWeight: -2}},
		{"bad status", services.TaskInput{Title: "t", EffortWeight: 1, Status: "SHIPPED"}},
	}
	for _, tc := range cases {
		_, err := services.CreateTasks(db, project.ID, []services.TaskInput{tc.input})
		if !types.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	if _, err := services.CreateTasks(db, project.ID, nil); !types.IsValidation(err) {
		t.Errorf("Expected validation error for empty batch, got %v", err)
	}
}

// TestUpdateTask checks a status flip shifts credit through the completion
// rule and resyncs contributions in the same call.
func TestUpdateTask(t *testing.T) {
	db := setupTestDB(t)
	createTestPartner(t, db, "p1", "u1", "Partner One")
	createTestPartner(t, db, "p2", "u2", "Partner Two")
	project := createTestProject(t, db, map[string]float64{"dev": 100}, nil)

	tasks, err := services.CreateTasks(db, project.ID, []services.TaskInput{
		{Title: "build", Category: "dev", EffortWeight: 5, AssignedPartnerID: "p1"},
	})
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}

	updated, err := services.UpdateTask(db, tasks[0].ID, services.TaskInput{
		Title:             "build",
		Category:          "dev",
		EffortWeight:      5,
		AssignedPartnerID: "p1",
		Status:            models.TaskStatusDone,
		CompletedByID:     "u2",
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Status != models.TaskStatusDone {
		t.Errorf("Expected status DONE, got %s", updated.Status)
	}

	stored := loadContributions(t, db, project.ID)
	if !almostEqual(stored["p2"], 100) {
		t.Errorf("Expected credit moved to p2 on completion, got %v", stored)
	}
}

// TestUpdateTaskUnknown checks the not-found mapping.
func TestUpdateTaskUnknown(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.UpdateTask(db, "no-such-task", services.TaskInput{Title: "t", EffortWeight: 1})
	if !types.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

// TestDeleteTask checks removal plus resync.
func TestDeleteTask(t *testing.T) {
	db := setupTestDB(t)
	createTestPartner(t, db, "p1", "u1", "Partner One")
	createTestPartner(t, db, "p2", "u2", "Partner Two")
	project := createTestProject(t, db, map[string]float64{"dev": 100}, nil)

	tasks, err := services.CreateTasks(db, project.ID, []services.TaskInput{
		{Title: "build", Category: "dev", EffortWeight: 5, AssignedPartnerID: "p1"},
		{Title: "review", Category: "dev", EffortWeight: 5, AssignedPartnerID: "p2"},
	})
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}

	if err := services.DeleteTask(db, tasks[1].ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	stored := loadContributions(t, db, project.ID)
	if !almostEqual(stored["p1"], 100) {
		t.Errorf("Expected p1 at 100 after deletion, got %v", stored)
	}
	if _, ok := stored["p2"]; ok {
		t.Errorf("Expected p2 dropped from contributions, got %v", stored)
	}
}
