package http

import (
	"context"

	"loyalty-rules/internal/rules/domain/repository"
	"loyalty-rules/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DecisionPoint is the slice of the engine the HTTP surface needs.
type DecisionPoint interface {
	Authorize(ctx context.Context, req *repository.AccessRequest) repository.Decision
}

// AuthorizeHandler exposes the decision point over HTTP. Well-formed
// requests always answer 200 with allow or deny; denial causes never leave
// the engine.
type AuthorizeHandler struct {
	decisions DecisionPoint
	log       logger.Logger
}

// NewAuthorizeHandler creates a new AuthorizeHandler
func NewAuthorizeHandler(decisions DecisionPoint, log logger.Logger) *AuthorizeHandler {
	return &AuthorizeHandler{
		decisions: decisions,
		log:       log,
	}
}

// SetupRoutes mounts the decision endpoint behind the middleware chain.
func (h *AuthorizeHandler) SetupRoutes(router fiber.Router, middleware *RulesMiddleware) {
	v1 := router.Group("/v1", middleware.RequestID(), middleware.CORS(), middleware.Authenticate())
	v1.Post("/authorize", h.Authorize)
}

// authorizeResponse is the entire external decision surface.
type authorizeResponse struct {
	Decision repository.Decision `json:"decision"`
}

// Authorize evaluates one access request. The principal always comes from
// the bearer token, never from the request body.
func (h *AuthorizeHandler) Authorize(c *fiber.Ctx) error {
	var req repository.AccessRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Warn("Rejected malformed authorize request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Principal = PrincipalFromContext(c.UserContext())

	decision := h.decisions.Authorize(c.UserContext(), &req)
	return c.JSON(authorizeResponse{Decision: decision})
}

// Health reports liveness for orchestration probes.
func (h *AuthorizeHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "loyalty-rules",
	})
}
