package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyJoinInput is a user-input validation failure, not a fault.
var ErrEmptyJoinInput = errors.New("meeting link or code is required")

// MeetingService covers the meeting actions: start an instant meeting, create
// a shareable link for later, and normalize a pasted link or code. Rooms are
// ephemeral; nothing here touches storage.
type MeetingService struct {
	baseURL string
}

func NewMeetingService(baseURL string) *MeetingService {
	return &MeetingService{baseURL: strings.TrimRight(baseURL, "/")}
}

// NewRoomID generates a fresh room token. 122 bits of randomness make
// collisions between independently created rooms negligible.
func (s *MeetingService) NewRoomID() string {
	return uuid.New().String()
}

// RoomPath builds the internal route for a room. The meetings query parameter
// carries the initiating user's id for display purposes only.
func (s *MeetingService) RoomPath(roomID, userID string) string {
	if userID == "" {
		return fmt.Sprintf("/video-meeting/%s", roomID)
	}
	return fmt.Sprintf("/video-meeting/%s?meetings=%s", roomID, url.QueryEscape(userID))
}

// ShareableLink builds the absolute URL handed to invitees. It is not
// persisted anywhere; once lost it cannot be recovered.
func (s *MeetingService) ShareableLink(roomID, userID string) string {
	return s.baseURL + s.RoomPath(roomID, userID)
}

// NormalizeJoinInput turns free-text input into a navigation target. A full
// URL passes through verbatim; anything else is treated as a bare room code.
// No check is made that the room exists; a bogus code simply yields an empty
// room downstream.
func (s *MeetingService) NormalizeJoinInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyJoinInput
	}

	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return input, nil
	}

	return fmt.Sprintf("/video-meeting/%s", url.PathEscape(input)), nil
}
