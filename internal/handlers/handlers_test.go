package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/jointventurehq/partnerbooks/internal/handlers"
	"github.com/jointventurehq/partnerbooks/internal/models"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Partner{},
		&models.Project{},
		&models.Task{},
		&models.Transaction{},
		&models.Contribution{},
		&models.Financial{},
		&models.CapitalInjection{},
		&models.Payout{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupTestApp wires the API routes without the auth middleware
func setupTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	projectHandler := &handlers.ProjectHandler{DB: db}
	taskHandler := &handlers.TaskHandler{DB: db}
	transactionHandler := &handlers.TransactionHandler{DB: db}
	partnerHandler := &handlers.PartnerHandler{DB: db}

	api := app.Group("/api")
	api.Post("/projects", projectHandler.CreateProject)
	api.Get("/projects/:id", projectHandler.GetProject)
	api.Get("/projects/:id/contributions", projectHandler.GetContributions)
	api.Post("/projects/:id/contributions/recompute", projectHandler.RecomputeContributions)
	api.Post("/projects/:id/sync", projectHandler.SyncFinancials)
	api.Get("/projects/:id/financials", projectHandler.GetFinancials)
	api.Post("/projects/:id/finalize", projectHandler.FinalizeProject)
	api.Get("/projects/:id/payouts", projectHandler.GetPayouts)
	api.Post("/projects/:id/tasks", taskHandler.CreateTasks)
	api.Put("/tasks/:id", taskHandler.UpdateTask)
	api.Delete("/tasks/:id", taskHandler.DeleteTask)
	api.Post("/projects/:id/transactions", transactionHandler.CreateTransaction)
	api.Delete("/transactions/:id", transactionHandler.DeleteTransaction)
	api.Post("/partners", partnerHandler.CreatePartner)
	api.Get("/partners", partnerHandler.ListPartners)
	api.Get("/partners/:id", partnerHandler.GetPartner)
	api.Post("/partners/:id/capital", partnerHandler.InjectCapital)
	api.Get("/capital", partnerHandler.ListCapitalInjections)
	api.Delete("/capital/:id", partnerHandler.DeleteCapitalInjection)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.StatusCode, result
}

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// createPartnerVia posts a partner and returns its id
func createPartnerVia(t *testing.T, app *fiber.App, userID, name string) string {
	status, result := postJSON(t, app, "/api/partners", map[string]interface{}{
		"userId": userID,
		"name":   name,
	})
	if status != 201 {
		t.Fatalf("Expected 201 creating partner, got %d: %v", status, result)
	}
	id, _ := result["id"].(string)
	if id == "" {
		t.Fatalf("Expected a partner id in response: %v", result)
	}
	return id
}

// TestProjectLifecycle walks the whole flow over HTTP: register partners,
// create a project, add tasks and transactions, recompute, sync, finalize.
func TestProjectLifecycle(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(db)

	p1 := createPartnerVia(t, app, "u1", "Partner One")
	p2 := createPartnerVia(t, app, "u2", "Partner Two")

	status, project := postJSON(t, app, "/api/projects", map[string]interface{}{
		"name":       "website rebuild",
		"totalValue": 50000,
		"weights":    map[string]float64{"dev": 100},
	})
	if status != 201 {
		t.Fatalf("Expected 201 creating project, got %d: %v", status, project)
	}
	projectID := project["id"].(string)

	status, _ = postJSON(t, app, "/api/projects/"+projectID+"/tasks", map[string]interface{}{
		"tasks": []map[string]interface{}{
			{"title": "build", "category": "dev", "effortWeight": 7, "assignedPartnerId": p1},
			{"title": "review", "category": "dev", "effortWeight": 3, "assignedPartnerId": p2},
		},
	})
	if status != 201 {
		t.Fatalf("Expected 201 creating tasks, got %d", status)
	}

	status, _ = postJSON(t, app, "/api/projects/"+projectID+"/transactions", map[string]interface{}{
		"amount": 30000,
		"type":   "INCOME",
	})
	if status != 201 {
		t.Fatalf("Expected 201 creating transaction, got %d", status)
	}
	status, _ = postJSON(t, app, "/api/projects/"+projectID+"/transactions", map[string]interface{}{
		"amount": "6000",
		"type":   "EXPENSE",
	})
	if status != 201 {
		t.Fatalf("Expected 201 creating expense with string amount, got %d", status)
	}

	// Recompute returns the contribution map.
	status, contributions := postJSON(t, app, "/api/projects/"+projectID+"/contributions/recompute", nil)
	if status != 200 {
		t.Fatalf("Expected 200 recomputing, got %d", status)
	}
	if v, ok := contributions[p1].(float64); !ok || v != 70 {
		t.Errorf("Expected p1 at 70, got %v", contributions[p1])
	}

	// Sync returns the snapshot.
	status, snapshot := postJSON(t, app, "/api/projects/"+projectID+"/sync", nil)
	if status != 200 {
		t.Fatalf("Expected 200 syncing, got %d", status)
	}
	if v, _ := snapshot["actualBalance"].(float64); v != 24000 {
		t.Errorf("Expected actual balance 24000, got %v", snapshot["actualBalance"])
	}
	if v, _ := snapshot["netDistributable"].(float64); v != 20400 {
		t.Errorf("Expected net distributable 20400, got %v", snapshot["netDistributable"])
	}

	// Finalize returns the payouts.
	req := httptest.NewRequest("POST", "/api/projects/"+projectID+"/finalize", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200 finalizing, got %d", resp.StatusCode)
	}
	var payouts []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payouts); err != nil {
		t.Fatalf("Failed to decode payouts: %v", err)
	}
	if len(payouts) != 2 {
		t.Fatalf("Expected 2 payouts, got %d", len(payouts))
	}

	// Finalize is one-shot.
	status, _ = postJSON(t, app, "/api/projects/"+projectID+"/finalize", nil)
	if status != 409 {
		t.Errorf("Expected 409 on second finalize, got %d", status)
	}

	// Stored payouts retrievable.
	var fetched []map[string]interface{}
	if status := getJSON(t, app, "/api/projects/"+projectID+"/payouts", &fetched); status != 200 {
		t.Fatalf("Expected 200 fetching payouts, got %d", status)
	}
	if len(fetched) != 2 {
		t.Errorf("Expected 2 stored payouts, got %d", len(fetched))
	}
}

// TestErrorMapping checks the taxonomy-to-status mapping at the HTTP edge.
func TestErrorMapping(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(db)

	// Unknown entity -> 404
	if status := getJSON(t, app, "/api/projects/no-such-id", nil); status != 404 {
		t.Errorf("Expected 404 for unknown project, got %d", status)
	}

	// Failed invariant -> 422
	p1 := createPartnerVia(t, app, "u1", "Partner One")
	status, result := postJSON(t, app, "/api/partners/"+p1+"/capital", map[string]interface{}{
		"amount": -50,
	})
	if status != 422 {
		t.Errorf("Expected 422 for negative injection, got %d: %v", status, result)
	}
	if result["ok"] != false {
		t.Errorf("Expected ok=false in error envelope, got %v", result)
	}

	// Duplicate partner -> 409
	status, _ = postJSON(t, app, "/api/partners", map[string]interface{}{
		"userId": "u1",
		"name":   "Duplicate",
	})
	if status != 409 {
		t.Errorf("Expected 409 for duplicate partner, got %d", status)
	}
}

// TestCapitalEndpoints checks injection, equity visibility and deletion.
func TestCapitalEndpoints(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(db)

	p1 := createPartnerVia(t, app, "u1", "Partner One")
	p2 := createPartnerVia(t, app, "u2", "Partner Two")

	status, _ := postJSON(t, app, "/api/partners/"+p1+"/capital", map[string]interface{}{
		"amount": 7500,
		"notes":  "seed",
	})
	if status != 201 {
		t.Fatalf("Expected 201 injecting capital, got %d", status)
	}
	// String amounts parse the same way.
	status, entry := postJSON(t, app, "/api/partners/"+p2+"/capital", map[string]interface{}{
		"amount": "2500",
	})
	if status != 201 {
		t.Fatalf("Expected 201 injecting string amount, got %d", status)
	}
	if v, _ := entry["postEquity"].(float64); v != 25 {
		t.Errorf("Expected p2 post equity 25, got %v", entry["postEquity"])
	}

	var partner map[string]interface{}
	if status := getJSON(t, app, "/api/partners/"+p1, &partner); status != 200 {
		t.Fatalf("Expected 200 fetching partner, got %d", status)
	}
	if v, _ := partner["equityPercentage"].(float64); v != 75 {
		t.Errorf("Expected p1 equity 75, got %v", partner["equityPercentage"])
	}

	var ledger []map[string]interface{}
	if status := getJSON(t, app, "/api/capital", &ledger); status != 200 {
		t.Fatalf("Expected 200 listing capital, got %d", status)
	}
	if len(ledger) != 2 {
		t.Fatalf("Expected 2 ledger entries, got %d", len(ledger))
	}

	entryID, _ := entry["id"].(string)
	req := httptest.NewRequest("DELETE", "/api/capital/"+entryID, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to delete injection: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200 deleting injection, got %d", resp.StatusCode)
	}

	if status := getJSON(t, app, "/api/partners/"+p1, &partner); status != 200 {
		t.Fatalf("Expected 200 fetching partner, got %d", status)
	}
	if v, _ := partner["equityPercentage"].(float64); v != 100 {
		t.Errorf("Expected p1 equity 100 after deletion, got %v", partner["equityPercentage"])
	}
}

// TestCreateTasksSingleObject checks that one task posted as a bare object
// under "tasks" is accepted the same as an array.
func TestCreateTasksSingleObject(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(db)

	createPartnerVia(t, app, "u1", "Partner One")

	status, project := postJSON(t, app, "/api/projects", map[string]interface{}{
		"name":    "single-task project",
		"weights": map[string]float64{"dev": 100},
	})
	if status != 201 {
		t.Fatalf("Expected 201 creating project, got %d", status)
	}
	projectID := project["id"].(string)

	req := httptest.NewRequest("POST", "/api/projects/"+projectID+"/tasks",
		bytes.NewReader([]byte(`{"tasks": {"title": "solo", "category": "dev", "effortWeight": "2.5"}}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected 201 for single-object task, got %d", resp.StatusCode)
	}

	var tasks []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		t.Fatalf("Failed to decode tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if v, _ := tasks[0]["effortWeight"].(float64); v != 2.5 {
		t.Errorf("Expected effort weight 2.5 from string, got %v", tasks[0]["effortWeight"])
	}
}
