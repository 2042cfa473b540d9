package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/jointventurehq/partnerbooks/internal/config"
	"github.com/jointventurehq/partnerbooks/internal/database"
	"github.com/jointventurehq/partnerbooks/internal/handlers"
	"github.com/jointventurehq/partnerbooks/internal/middleware"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"github.com/jointventurehq/partnerbooks/internal/utils"

	_ "github.com/jointventurehq/partnerbooks/docs/api" // Swagger docs
)

// @title PartnerBooks API
// @version 1.0.0
// @description Partnership contribution, profit distribution and equity service

// @contact.name API Support
// @contact.url https://github.com/jointventurehq/partnerbooks

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("partnerbooks")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	projectHandler := &handlers.ProjectHandler{DB: db}
	taskHandler := &handlers.TaskHandler{DB: db}
	transactionHandler := &handlers.TransactionHandler{DB: db}
	partnerHandler := &handlers.PartnerHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	// Health (public)
	api.Get("/health", healthHandler.GetHealth)

	// Projects
	api.Post("/projects", middleware.AuthAdmin(cfg), projectHandler.CreateProject)
	api.Get("/projects/:id", middleware.AuthUser(cfg), projectHandler.GetProject)
	api.Get("/projects/:id/contributions", middleware.AuthUser(cfg), projectHandler.GetContributions)
	api.Post("/projects/:id/contributions/recompute", middleware.AuthAdmin(cfg), projectHandler.RecomputeContributions)
	api.Post("/projects/:id/sync", middleware.AuthAdmin(cfg), projectHandler.SyncFinancials)
	api.Get("/projects/:id/financials", middleware.AuthUser(cfg), projectHandler.GetFinancials)
	api.Post("/projects/:id/finalize", middleware.AuthAdmin(cfg), projectHandler.FinalizeProject)
	api.Get("/projects/:id/payouts", middleware.AuthUser(cfg), projectHandler.GetPayouts)

	// Tasks
	api.Post("/projects/:id/tasks", middleware.AuthAdmin(cfg), taskHandler.CreateTasks)
	api.Put("/tasks/:id", middleware.AuthAdmin(cfg), taskHandler.UpdateTask)
	api.Delete("/tasks/:id", middleware.AuthAdmin(cfg), taskHandler.DeleteTask)

	// Transactions
	api.Post("/projects/:id/transactions", middleware.AuthAdmin(cfg), transactionHandler.CreateTransaction)
	api.Delete("/transactions/:id", middleware.AuthAdmin(cfg), transactionHandler.DeleteTransaction)

	// Partners and capital
	api.Post("/partners", middleware.AuthAdmin(cfg), partnerHandler.CreatePartner)
	api.Get("/partners", middleware.AuthUser(cfg), partnerHandler.ListPartners)
	api.Get("/partners/:id", middleware.AuthUser(cfg), partnerHandler.GetPartner)
	api.Post("/partners/:id/capital", middleware.AuthAdmin(cfg), partnerHandler.InjectCapital)
	api.Get("/capital", middleware.AuthUser(cfg), partnerHandler.ListCapitalInjections)
	api.Delete("/capital/:id", middleware.AuthAdmin(cfg), partnerHandler.DeleteCapitalInjection)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
