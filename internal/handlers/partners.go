package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"github.com/jointventurehq/partnerbooks/internal/utils"
	"gorm.io/gorm"
)

// PartnerHandler handles partner and capital routes
type PartnerHandler struct {
	DB *gorm.DB
}

// CreatePartner handles POST /api/partners
// @Summary Register a partner
// @Tags Partners
// @Accept json
// @Produce json
// @Param body body services.PartnerInput true "Partner to register"
// @Success 201 {object} models.Partner
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /partners [post]
func (h *PartnerHandler) CreatePartner(c *fiber.Ctx) error {
	var input services.PartnerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "partners.validation.input")
	}

	partner, err := services.CreatePartner(h.DB, input)
	if err != nil {
		return engineErrorResponse(c, err, "createPartner")
	}

	return utils.SuccessResponse(c, partner, fiber.StatusCreated)
}

// ListPartners handles GET /api/partners
// @Summary List partners
// @Tags Partners
// @Produce json
// @Success 200 {array} models.Partner
// @Router /partners [get]
func (h *PartnerHandler) ListPartners(c *fiber.Ctx) error {
	partners, err := services.ListPartners(h.DB)
	if err != nil {
		return engineErrorResponse(c, err, "listPartners")
	}
	return utils.SuccessResponse(c, partners, fiber.StatusOK)
}

// GetPartner handles GET /api/partners/:id
// @Summary Get a partner
// @Tags Partners
// @Produce json
// @Param id path string true "Partner ID"
// @Success 200 {object} models.Partner
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /partners/{id} [get]
func (h *PartnerHandler) GetPartner(c *fiber.Ctx) error {
	partner, err := services.GetPartner(h.DB, c.Params("id"))
	if err != nil {
		return engineErrorResponse(c, err, "getPartner")
	}
	return utils.SuccessResponse(c, partner, fiber.StatusOK)
}

// InjectCapital handles POST /api/partners/:id/capital
// @Summary Record a capital injection
// @Description Apply a capital injection and renormalize every partner's equity in one transaction
// @Tags Capital
// @Accept json
// @Produce json
// @Param id path string true "Partner ID"
// @Param body body object true "amount and optional notes"
// @Success 201 {object} models.CapitalInjection
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /partners/{id}/capital [post]
func (h *PartnerHandler) InjectCapital(c *fiber.Ctx) error {
	var body struct {
		Amount types.FlexFloat64 `json:"amount"`
		Notes  string            `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "capital.validation.input")
	}

	entry, err := services.InjectCapital(h.DB, c.Params("id"), body.Amount.Float64(), body.Notes)
	if err != nil {
		return engineErrorResponse(c, err, "injectCapital")
	}

	return utils.SuccessResponse(c, entry, fiber.StatusCreated)
}

// ListCapitalInjections handles GET /api/capital
// @Summary List the capital ledger
// @Tags Capital
// @Produce json
// @Success 200 {array} models.CapitalInjection
// @Router /capital [get]
func (h *PartnerHandler) ListCapitalInjections(c *fiber.Ctx) error {
	entries, err := services.ListCapitalInjections(h.DB)
	if err != nil {
		return engineErrorResponse(c, err, "listCapitalInjections")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// DeleteCapitalInjection handles DELETE /api/capital/:id
// @Summary Delete a capital ledger entry
// @Description Remove an injection and recompute equity for every partner from the remaining capital
// @Tags Capital
// @Produce json
// @Param id path string true "Capital injection ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /capital/{id} [delete]
func (h *PartnerHandler) DeleteCapitalInjection(c *fiber.Ctx) error {
	if err := services.DeleteCapitalInjection(h.DB, c.Params("id")); err != nil {
		return engineErrorResponse(c, err, "deleteCapitalInjection")
	}
	return utils.MutationSuccessResponse(c, 1)
}
