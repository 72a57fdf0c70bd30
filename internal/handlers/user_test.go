package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/veljkom/meetlite-api/internal/middleware"
	"github.com/veljkom/meetlite-api/internal/models"
	"github.com/veljkom/meetlite-api/internal/services"
	"github.com/veljkom/meetlite-api/pkg/dto"
	"github.com/veljkom/meetlite-api/tests/testutil"
)

func newTestSessionService() *services.SessionService {
	return services.NewSessionService("test-secret-key", time.Hour)
}

func issueTestSession(t *testing.T, sessions *services.SessionService, userID uuid.UUID) string {
	t.Helper()
	token, err := sessions.Issue(&models.User{ID: userID, Email: "me@example.com", Name: "Me"}, "")
	require.NoError(t, err)
	return token
}

// newUserApp mounts the user routes behind the route guard, the way main does.
func newUserApp(handler *UserHandler, sessions *services.SessionService) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	guarded := app.Group("")
	guarded.Use(middleware.Guard(sessions))
	guarded.Get("/api/user/:id", handler.Get)
	guarded.Put("/api/user/:id", handler.Update)
	guarded.Delete("/api/user/:id", handler.Delete)
	return app
}

func TestUserHandler_Get_Success(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	userID := uuid.New()
	picture := "https://example.com/avatar.png"
	user := &models.User{
		ID:             userID,
		Name:           "Test User",
		Email:          "test@example.com",
		ProfilePicture: &picture,
		IsVerified:     true,
	}
	mockUsers.On("GetByID", mock.Anything, userID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/"+userID.String(), nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueTestSession(t, sessions, userID)})
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, userID, response.ID)
	assert.Equal(t, "Test User", response.Name)
	assert.Equal(t, &picture, response.ProfilePicture)
	assert.True(t, response.IsVerified)

	mockUsers.AssertExpectations(t)
}

func TestUserHandler_Get_NoSessionRedirects(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/user/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, middleware.LoginPath, rec.Header().Get("Location"))
	mockUsers.AssertNotCalled(t, "GetByID")
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/user/not-a-uuid", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueTestSession(t, sessions, uuid.New())})
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	userID := uuid.New()
	mockUsers.On("GetByID", mock.Anything, userID).Return(nil, services.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/user/"+userID.String(), nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueTestSession(t, sessions, userID)})
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_Update_PartialBody(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	userID := uuid.New()
	newName := "Renamed"
	updated := &models.User{ID: userID, Name: newName, Email: "test@example.com"}
	mockUsers.On("Update", mock.Anything, userID, services.UserUpdate{Name: &newName}).Return(updated, nil)

	client := testutil.NewHTTPTestClient(t, app)
	token := issueTestSession(t, sessions, userID)
	rec := client.PUT("/api/user/"+userID.String(),
		dto.UpdateUserRequest{Name: &newName},
		map[string]string{"Cookie": middleware.SessionCookie + "=" + token})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), newName)
	mockUsers.AssertExpectations(t)
}

func TestUserHandler_Update_EmptyName(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	userID := uuid.New()
	empty := ""

	client := testutil.NewHTTPTestClient(t, app)
	token := issueTestSession(t, sessions, userID)
	rec := client.PUT("/api/user/"+userID.String(),
		dto.UpdateUserRequest{Name: &empty},
		map[string]string{"Cookie": middleware.SessionCookie + "=" + token})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUsers.AssertNotCalled(t, "Update")
}

func TestUserHandler_Delete_Success(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	userID := uuid.New()
	mockUsers.On("Delete", mock.Anything, userID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/user/"+userID.String(), nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueTestSession(t, sessions, userID)})
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUsers.AssertExpectations(t)
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	mockUsers := new(testutil.MockUserService)
	sessions := newTestSessionService()
	app := newUserApp(NewUserHandler(mockUsers), sessions)

	userID := uuid.New()
	mockUsers.On("Delete", mock.Anything, userID).Return(services.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/user/"+userID.String(), nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueTestSession(t, sessions, userID)})
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
