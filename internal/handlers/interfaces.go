package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veljkom/meetlite-api/internal/models"
	"github.com/veljkom/meetlite-api/internal/oauth"
	"github.com/veljkom/meetlite-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, upd services.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionServiceInterface defines the methods used by handlers from SessionService
type SessionServiceInterface interface {
	Issue(user *models.User, accessToken string) (string, error)
	Validate(token string) (*services.SessionClaims, error)
	Expiry() time.Duration
}

// MeetingServiceInterface defines the methods used by handlers from MeetingService
type MeetingServiceInterface interface {
	NewRoomID() string
	RoomPath(roomID, userID string) string
	ShareableLink(roomID, userID string) string
	NormalizeJoinInput(input string) (string, error)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendMeetingInvite(to, hostName, joinURL string) error
}
