package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/veljkom/meetlite-api/internal/models"
)

// SessionService issues and validates the signed session token that represents
// an authenticated user across requests. The token is self-contained; there is
// no server-side session table and no custom renewal logic.
type SessionService struct {
	secret []byte
	expiry time.Duration
}

// SessionClaims carries the internal user id, the provider-issued access token
// and the standard identity claims.
type SessionClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture,omitempty"`
	AccessToken string    `json:"access_token,omitempty"`
	jwt.RegisteredClaims
}

func NewSessionService(secret string, expiry time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *SessionService) Issue(user *models.User, accessToken string) (string, error) {
	now := time.Now()

	picture := ""
	if user.ProfilePicture != nil {
		picture = *user.ProfilePicture
	}

	claims := SessionClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Picture:     picture,
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "meetlite-api",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (s *SessionService) Expiry() time.Duration {
	return s.expiry
}
