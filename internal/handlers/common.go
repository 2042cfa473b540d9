package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"github.com/jointventurehq/partnerbooks/internal/utils"
)

// engineErrorResponse maps the engine's error taxonomy onto HTTP responses:
// NotFound -> 404, ValidationError -> 422, ConflictError -> 409, anything
// else -> 500. Messages pass through verbatim; they carry the entity id and
// the invariant that failed.
func engineErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case types.IsNotFound(err):
		return utils.NotFoundResponse(c, err.Error())
	case types.IsValidation(err):
		return utils.ValidationErrorResponse(c, err.Error(), errorType)
	case types.IsConflict(err):
		return utils.ConflictResponse(c, err.Error())
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
