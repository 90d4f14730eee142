package http

import (
	"context"
	"strings"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// TokenValidator reduces a bearer token to the Principal it names.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (model.Principal, error)
}

// RulesMiddleware provides the HTTP-side plumbing around the decision
// endpoint: request ids, CORS and bearer authentication.
type RulesMiddleware struct {
	tokens TokenValidator
}

// NewRulesMiddleware creates a new RulesMiddleware
func NewRulesMiddleware(tokens TokenValidator) *RulesMiddleware {
	return &RulesMiddleware{tokens: tokens}
}

// CORS middleware with security headers
func (m *RulesMiddleware) CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		MaxAge:       86400,
	})
}

// RequestID middleware
func (m *RulesMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// Authenticate resolves the caller's bearer token and stores the resulting
// uid in the user context. A missing or invalid token leaves the request
// unauthenticated rather than rejecting it; the engine denies anonymous
// operations itself, and the denial must be auditable.
func (m *RulesMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearer(c)
		if token == "" {
			return c.Next()
		}

		principal, err := m.tokens.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		ctx := context.WithValue(c.UserContext(), contextkeys.UserIDKey, principal.UID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func extractBearer(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// PrincipalFromContext returns the authenticated principal stored by
// Authenticate, or the zero Principal when the request carried no token.
func PrincipalFromContext(ctx context.Context) model.Principal {
	if uid, ok := ctx.Value(contextkeys.UserIDKey).(string); ok {
		return model.Principal{UID: uid}
	}
	return model.Principal{}
}
