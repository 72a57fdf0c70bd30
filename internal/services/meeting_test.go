package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingService_NewRoomID_Unique(t *testing.T) {
	svc := NewMeetingService("https://meet.example.com")

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := svc.NewRoomID()
		require.False(t, seen[id], "room id collision: %s", id)
		seen[id] = true

		_, err := uuid.Parse(id)
		require.NoError(t, err)
	}
}

func TestMeetingService_RoomPath(t *testing.T) {
	svc := NewMeetingService("https://meet.example.com")
	userID := uuid.New().String()

	path := svc.RoomPath("room-1", userID)
	assert.Equal(t, "/video-meeting/room-1?meetings="+userID, path)

	// Without an initiating user the query parameter is omitted
	assert.Equal(t, "/video-meeting/room-1", svc.RoomPath("room-1", ""))
}

func TestMeetingService_ShareableLink(t *testing.T) {
	// Trailing slash on the base URL must not double up
	svc := NewMeetingService("https://meet.example.com/")
	userID := uuid.New().String()

	link := svc.ShareableLink("room-1", userID)
	assert.Equal(t, "https://meet.example.com/video-meeting/room-1?meetings="+userID, link)
	assert.False(t, strings.Contains(link, "com//"))
}

func TestMeetingService_NormalizeJoinInput(t *testing.T) {
	svc := NewMeetingService("https://meet.example.com")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "full https url passes through verbatim",
			input: "https://meet.example.com/video-meeting/abc?meetings=u1",
			want:  "https://meet.example.com/video-meeting/abc?meetings=u1",
		},
		{
			name:  "full http url passes through verbatim",
			input: "http://other.example.com/video-meeting/abc",
			want:  "http://other.example.com/video-meeting/abc",
		},
		{
			name:  "bare code becomes internal route",
			input: "abc-123",
			want:  "/video-meeting/abc-123",
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "  abc-123  ",
			want:  "/video-meeting/abc-123",
		},
		{
			name:    "empty input is a validation error",
			input:   "",
			wantErr: ErrEmptyJoinInput,
		},
		{
			name:    "whitespace-only input is a validation error",
			input:   "   ",
			wantErr: ErrEmptyJoinInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.NormalizeJoinInput(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
