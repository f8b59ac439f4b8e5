package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// Config holds the operator credential gate settings. The deployment uses
// a single shared operator credential; the role chosen at login decides
// which workflow scopes the session carries.
type Config struct {
	Username     string
	PasswordHash string // bcrypt hash
	JWTSecret    string
	JWTIssuer    string
	TokenTTL     time.Duration
}

// DefaultConfig returns config with standard TTL and issuer.
func DefaultConfig() Config {
	return Config{
		JWTIssuer: "crewdesk",
		TokenTTL:  12 * time.Hour,
	}
}

// LoginRequest - credentials plus the role to assume for the session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse - issued session token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	Role        string    `json:"role"`
	Scopes      []string  `json:"scopes"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Handlers provides the authentication endpoints.
type Handlers struct {
	config    Config
	tokens    TokenService
	passwords PasswordService
}

// NewHandlers creates the auth handlers.
func NewHandlers(config Config, tokens TokenService, passwords PasswordService) *Handlers {
	return &Handlers{
		config:    config,
		tokens:    tokens,
		passwords: passwords,
	}
}

// Login verifies the shared operator credential and issues a role token.
// POST /auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if req.Username != h.config.Username || !h.passwords.Compare(h.config.PasswordHash, req.Password) {
		return ErrInvalidCredentials()
	}

	scopes, ok := RoleScopes[req.Role]
	if !ok {
		return ErrUnknownRole().WithDetail("role", req.Role)
	}

	userID := kernel.NewUserID(uuid.NewString())
	token, err := h.tokens.GenerateAccessToken(userID, req.Role, scopes)
	if err != nil {
		return err
	}

	return c.JSON(LoginResponse{
		AccessToken: token,
		Role:        req.Role,
		Scopes:      scopes,
		ExpiresAt:   time.Now().Add(h.config.TokenTTL),
	})
}

// Me returns the authenticated session context.
// GET /auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authCtx, ok := GetAuthContext(c)
	if !ok {
		return ErrMissingToken()
	}
	return c.JSON(fiber.Map{
		"user_id": authCtx.UserID,
		"role":    authCtx.Role,
		"scopes":  authCtx.Scopes,
	})
}

// RegisterRoutes registers the auth routes.
func (h *Handlers) RegisterRoutes(app *fiber.App, middleware *TokenMiddleware) {
	app.Post("/auth/login", h.Login)
	app.Get("/auth/me", middleware.Authenticate(), h.Me)
}
