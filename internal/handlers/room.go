package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
	"github.com/veljkom/meetlite-api/internal/config"
	"github.com/veljkom/meetlite-api/internal/middleware"
	"github.com/veljkom/meetlite-api/internal/telemetry"
	"github.com/veljkom/meetlite-api/internal/video"
)

// RoomHandler serves the video meeting page. The page itself is a thin
// shell: the server issues a room credential and hands everything to the
// embedded video widget, which owns the in-call experience.
type RoomHandler struct {
	cfg    *config.Config
	issuer video.TokenIssuer
	log    *logrus.Logger
}

func NewRoomHandler(cfg *config.Config, issuer video.TokenIssuer, log *logrus.Logger) *RoomHandler {
	return &RoomHandler{cfg: cfg, issuer: issuer, log: log}
}

func (h *RoomHandler) Show(c *drift.Context) {
	roomID := c.Param("roomId")
	if roomID == "" {
		http.Redirect(c.Response, c.Request, video.HomeRoute, http.StatusFound)
		return
	}

	// Signed-in visitors join under their own identity; everyone else
	// gets a throwaway id and a generic display name.
	userID := middleware.GetUserID(c).String()
	userName := middleware.GetUserName(c)
	if middleware.GetUserID(c) == uuid.Nil {
		userID = uuid.New().String()
	}
	if userName == "" {
		userName = video.GuestName
	}

	cred, err := h.issuer.Issue(roomID, userID, userName)
	if err != nil {
		h.log.WithError(err).Error("failed to issue room credential")
		c.InternalServerError("video is not available right now")
		return
	}

	telemetry.CountRoomTokenIssued()

	sharedLink := h.cfg.BaseURL + "/video-meeting/" + roomID

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Meeting %s</title>
    <style>
        * { box-sizing: border-box; }
        html, body { margin: 0; padding: 0; height: 100%%; background: #111827; }
        #meeting-root { width: 100vw; height: 100vh; }
    </style>
</head>
<body>
    <div id="meeting-root"></div>
    <script src="https://unpkg.com/@zegocloud/zego-uikit-prebuilt/zego-uikit-prebuilt.js"></script>
    <script>
        var appID = %d;
        var kitToken = %q;
        var roomID = %q;
        var userID = %q;
        var userName = %q;
        var sharedLink = %q;

        var zp = ZegoUIKitPrebuilt.create(
            ZegoUIKitPrebuilt.generateKitTokenForProduction(appID, kitToken, roomID, userID, userName)
        );
        zp.joinRoom({
            container: document.getElementById('meeting-root'),
            sharedLinks: [{ name: 'Meeting link', url: sharedLink }],
            scenario: { mode: ZegoUIKitPrebuilt.VideoConference },
            onLeaveRoom: function() { window.location.href = %q; },
            onReturnToHomeScreenClicked: function() { window.location.href = %q; }
        });
    </script>
</body>
</html>`, roomID, h.cfg.Video.AppID, cred.Token, roomID, userID, userName,
		sharedLink, video.HomeRoute, video.HomeRoute)

	_ = c.HTML(200, html)
}
