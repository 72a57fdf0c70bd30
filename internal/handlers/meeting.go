package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
	"github.com/veljkom/meetlite-api/internal/middleware"
	"github.com/veljkom/meetlite-api/internal/services"
	"github.com/veljkom/meetlite-api/internal/telemetry"
	"github.com/veljkom/meetlite-api/pkg/dto"
)

type MeetingHandler struct {
	meetings MeetingServiceInterface
	email    EmailServiceInterface
	log      *logrus.Logger
}

func NewMeetingHandler(meetings MeetingServiceInterface, email EmailServiceInterface, log *logrus.Logger) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, email: email, log: log}
}

// Instant mints a fresh room and returns the path the caller should
// navigate to. The host's user id rides along as the meetings query
// parameter so the room page knows who started it.
func (h *MeetingHandler) Instant(c *drift.Context) {
	userID := middleware.GetUserID(c)
	roomID := h.meetings.NewRoomID()

	telemetry.CountMeetingStarted()

	c.JSON(200, dto.MeetingResponse{
		RoomID: roomID,
		URL:    h.meetings.RoomPath(roomID, userID.String()),
	})
}

// Later mints a room but returns an absolute link meant to be copied
// and shared ahead of time.
func (h *MeetingHandler) Later(c *drift.Context) {
	userID := middleware.GetUserID(c)
	roomID := h.meetings.NewRoomID()

	telemetry.CountMeetingLinkCreated()

	c.JSON(200, dto.MeetingResponse{
		RoomID: roomID,
		URL:    h.meetings.ShareableLink(roomID, userID.String()),
	})
}

func (h *MeetingHandler) Join(c *drift.Context) {
	var req dto.JoinMeetingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	target, err := h.meetings.NormalizeJoinInput(req.Code)
	if err != nil {
		if errors.Is(err, services.ErrEmptyJoinInput) {
			c.BadRequest("meeting link or code is required")
			return
		}
		c.BadRequest("invalid meeting link or code")
		return
	}

	c.JSON(200, dto.JoinMeetingResponse{URL: target})
}

func (h *MeetingHandler) Share(c *drift.Context) {
	var req dto.ShareMeetingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.URL == "" {
		c.BadRequest("email and url are required")
		return
	}

	if !h.email.IsConfigured() {
		c.InternalServerError("email is not configured")
		return
	}

	hostName := middleware.GetUserName(c)
	if hostName == "" {
		hostName = "A MeetLite user"
	}

	if err := h.email.SendMeetingInvite(req.Email, hostName, req.URL); err != nil {
		h.log.WithError(err).Error("failed to send meeting invite")
		c.InternalServerError("failed to send invite")
		return
	}

	c.JSON(200, dto.MessageResponse{Message: "invite sent"})
}
