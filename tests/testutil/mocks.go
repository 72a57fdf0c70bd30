package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/veljkom/meetlite-api/internal/models"
	"github.com/veljkom/meetlite-api/internal/oauth"
	"github.com/veljkom/meetlite-api/internal/services"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, upd services.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMeetingService mocks the MeetingService
type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) NewRoomID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockMeetingService) RoomPath(roomID, userID string) string {
	args := m.Called(roomID, userID)
	return args.String(0)
}

func (m *MockMeetingService) ShareableLink(roomID, userID string) string {
	args := m.Called(roomID, userID)
	return args.String(0)
}

func (m *MockMeetingService) NormalizeJoinInput(input string) (string, error) {
	args := m.Called(input)
	return args.String(0), args.Error(1)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendMeetingInvite(to, hostName, joinURL string) error {
	args := m.Called(to, hostName, joinURL)
	return args.Error(0)
}
