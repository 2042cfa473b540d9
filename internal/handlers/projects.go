package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/utils"
	"gorm.io/gorm"
)

// ProjectHandler handles project routes
type ProjectHandler struct {
	DB *gorm.DB
}

// CreateProject handles POST /api/projects
// @Summary Create a project
// @Description Create a project with category weights and designated leads
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body services.ProjectInput true "Project to create"
// @Success 201 {object} models.Project
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var input services.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "projects.validation.input")
	}

	project, err := services.CreateProject(h.DB, input)
	if err != nil {
		return engineErrorResponse(c, err, "createProject")
	}

	return utils.SuccessResponse(c, project, fiber.StatusCreated)
}

// GetProject handles GET /api/projects/:id
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := services.GetProject(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "getProject")
	}
	return utils.SuccessResponse(c, project, fiber.StatusOK)
}

// GetContributions handles GET /api/projects/:id/contributions
// @Summary Get the stored contribution set for a project
// @Tags Contributions
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Contribution
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/contributions [get]
func (h *ProjectHandler) GetContributions(c *fiber.Ctx) error {
	contributions, err := services.GetContributions(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "getContributions")
	}
	return utils.SuccessResponse(c, contributions, fiber.StatusOK)
}

// RecomputeContributions handles POST /api/projects/:id/contributions/recompute
// @Summary Recompute contribution percentages
// @Description Derive per-partner contribution percentages from task effort and category weights. Idempotent.
// @Tags Contributions
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]float64
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/contributions/recompute [post]
func (h *ProjectHandler) RecomputeContributions(c *fiber.Ctx) error {
	result, err := services.RecomputeContributions(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "recomputeContributions")
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// SyncFinancials handles POST /api/projects/:id/sync
// @Summary Recompute and persist the financial snapshot
// @Description Refresh contributions, recompute the ledger balance and pool split, upsert the snapshot. Idempotent.
// @Tags Financials
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} services.FinancialSnapshot
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/sync [post]
func (h *ProjectHandler) SyncFinancials(c *fiber.Ctx) error {
	snapshot, err := services.SyncProjectFinancials(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "syncFinancials")
	}
	return utils.SuccessResponse(c, snapshot, fiber.StatusOK)
}

// GetFinancials handles GET /api/projects/:id/financials
// @Summary Get the latest financial snapshot
// @Tags Financials
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} services.FinancialSnapshot
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/financials [get]
func (h *ProjectHandler) GetFinancials(c *fiber.Ctx) error {
	snapshot, err := services.GetFinancial(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "getFinancials")
	}
	return utils.SuccessResponse(c, snapshot, fiber.StatusOK)
}

// FinalizeProject handles POST /api/projects/:id/finalize
// @Summary Finalize a project
// @Description Recompute one last time, lock the project and generate payouts. One-time; rejects if already locked.
// @Tags Financials
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Payout
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/finalize [post]
func (h *ProjectHandler) FinalizeProject(c *fiber.Ctx) error {
	payouts, err := services.FinalizeProject(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "finalizeProject")
	}
	return utils.SuccessResponse(c, payouts, fiber.StatusOK)
}

// GetPayouts handles GET /api/projects/:id/payouts
// @Summary Get the payouts generated at finalization
// @Tags Financials
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Payout
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/payouts [get]
func (h *ProjectHandler) GetPayouts(c *fiber.Ctx) error {
	payouts, err := services.GetPayouts(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "getPayouts")
	}
	return utils.SuccessResponse(c, payouts, fiber.StatusOK)
}
