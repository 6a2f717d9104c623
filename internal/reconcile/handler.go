package reconcile

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the comparison endpoint.
type Handler struct {
	engine *Engine
}

// NewHandler constructs a reconciliation handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Compare runs a reconciliation and returns the per-address results.
func (h *Handler) Compare(c *fiber.Ctx) error {
	results, err := h.engine.Compare(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(results)
}
