package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/utils"
	"gorm.io/gorm"
)

// TransactionHandler handles ledger routes
type TransactionHandler struct {
	DB *gorm.DB
}

// CreateTransaction handles POST /api/projects/:id/transactions
// @Summary Record a ledger entry
// @Description Append an income/expense entry; the project's financial snapshot resyncs in the same transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body services.TransactionInput true "Ledger entry"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var input services.TransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "transactions.validation.input")
	}

	entry, snapshot, err := services.CreateTransaction(h.DB, c.Params("id"), input)
	if err != nil {
		return engineErrorResponse(c, err, "createTransaction")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"transaction": entry,
		"financial":   snapshot,
	}, fiber.StatusCreated)
}

// DeleteTransaction handles DELETE /api/transactions/:id
// @Summary Delete a ledger entry
// @Description Remove an entry; the project's financial snapshot resyncs in the same transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	snapshot, err := services.DeleteTransaction(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "deleteTransaction")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"message":   "Success",
		"ok":        true,
		"financial": snapshot,
	}, fiber.StatusOK)
}
