package auth

import (
	"fmt"
	"time"

	apperrors "teamup-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the JWT payload identifying a principal
type AuthClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService issues and validates the bearer tokens that identify a
// request's principal
type AuthService struct {
	secret []byte
	expiry time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(secret string, expiry time.Duration) (*AuthService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &AuthService{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

// IssueToken creates a signed JWT for the user
func (s *AuthService) IssueToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateJWT parses and verifies a token, returning its claims
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}
