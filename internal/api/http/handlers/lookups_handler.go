package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/service"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// LookupsHandler serves the distinct-value endpoints used to populate the
// filter controls.
type LookupsHandler struct {
	lookups *service.LookupService
}

// NewLookupsHandler constructs handler.
func NewLookupsHandler(lookupService *service.LookupService) *LookupsHandler {
	return &LookupsHandler{lookups: lookupService}
}

// Statuses handles GET /get-statuses.
func (h *LookupsHandler) Statuses(c *fiber.Ctx) error {
	return h.respond(c, h.lookups.Statuses)
}

// FromValues handles GET /get-from-values.
func (h *LookupsHandler) FromValues(c *fiber.Ctx) error {
	return h.respond(c, h.lookups.FromValues)
}

// Categories handles GET /get-categories.
func (h *LookupsHandler) Categories(c *fiber.Ctx) error {
	return h.respond(c, h.lookups.Categories)
}

func (h *LookupsHandler) respond(c *fiber.Ctx, query func(ctx context.Context, creator string) ([]string, error)) error {
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	values, err := query(c.UserContext(), username)
	if err != nil {
		return err
	}
	return c.JSON(values)
}
