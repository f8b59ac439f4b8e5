package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seaforth/crewdesk/pkg/kernel"
)

// TokenService issues and validates operator access tokens.
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role string, scopes []string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims is the decoded payload of a validated access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Role      string
	Scopes    []string
	ExpiresAt time.Time
}

type jwtClaims struct {
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HMAC-signed JWTs.
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// NewJWTService creates a JWT token service.
func NewJWTService(secretKey string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		issuer:    issuer,
	}
}

// GenerateAccessToken signs a token for the operator session.
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role string, scopes []string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Role:   role,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", ErrTokenGenerationFailed().WithDetail("cause", err.Error())
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token string.
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken().WithDetail("alg", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	expires := time.Time{}
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Role:      claims.Role,
		Scopes:    claims.Scopes,
		ExpiresAt: expires,
	}, nil
}
