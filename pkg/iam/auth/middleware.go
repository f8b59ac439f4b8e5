package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated operator attached to a request.
type AuthContext struct {
	UserID kernel.UserID
	Role   string
	Scopes []string
}

// HasAnyScope reports whether the context grants any of the given scopes.
func (a *AuthContext) HasAnyScope(required ...string) bool {
	for _, req := range required {
		for _, granted := range a.Scopes {
			if ScopeSatisfies(granted, req) {
				return true
			}
		}
	}
	return false
}

// GetAuthContext extracts the auth context set by Authenticate.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

// TokenMiddleware guards routes with bearer-token authentication and
// scope checks.
type TokenMiddleware struct {
	tokens TokenService
}

// NewTokenMiddleware creates the auth middleware.
func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token and stores the auth context.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrMissingToken()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ErrInvalidToken().WithDetail("reason", "authorization header must be 'Bearer <token>'")
		}

		claims, err := m.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Role:   claims.Role,
			Scopes: claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope rejects requests whose token does not cover the scope.
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !authCtx.HasAnyScope(scope) {
			return ErrInsufficientScope().
				WithDetail("required_scope", scope).
				WithDetail("role", authCtx.Role)
		}
		return c.Next()
	}
}
