package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/veljkom/meetlite-api/internal/database"
	"github.com/veljkom/meetlite-api/internal/models"
	"github.com/veljkom/meetlite-api/internal/oauth"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Name:       fmt.Sprintf("Test User %d", f.counter),
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		IsVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, profile_picture, is_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, profile_picture, is_verified, created_at, updated_at
	`, user.Name, user.Email, user.ProfilePicture, user.IsVerified).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithProfilePicture sets the user's profile picture URL
func WithProfilePicture(url string) UserOption {
	return func(u *models.User) {
		u.ProfilePicture = &url
	}
}

// WithUnverifiedEmail marks the user's email as unverified
func WithUnverifiedEmail() UserOption {
	return func(u *models.User) {
		u.IsVerified = false
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:         email,
		EmailVerified: true,
		Name:          name,
		AvatarURL:     "https://example.com/avatar.png",
		Provider:      provider,
	}
}
