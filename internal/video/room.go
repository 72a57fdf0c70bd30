package video

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// HomeRoute is where a participant lands after a meeting ends.
const HomeRoute = "/"

// GuestName is the display name used when no authenticated identity exists.
const GuestName = "Guest"

// Callbacks are the engine's lifecycle notifications for one room session.
type Callbacks struct {
	OnJoin  func()
	OnLeave func()
}

// Session is a live attachment to a room. Leave releases the engine's
// resources for this participant.
type Session interface {
	Leave()
}

// Engine is the joining capability of the external video engine.
type Engine interface {
	Join(ctx context.Context, cred *Credential, cb Callbacks) (Session, error)
}

// RoomController drives the room lifecycle for one participant: issue a
// credential, join, track in-meeting state, and tear down exactly once no
// matter how many paths request it (leave callback, explicit end, unmount).
// It is the testable model of the lifecycle the hosted widget runs in the
// browser; the server's own request path stops at issuing the credential,
// so nothing in the handlers wires a controller up.
type RoomController struct {
	issuer TokenIssuer
	engine Engine

	mu        sync.Mutex
	session   Session
	inMeeting bool
}

func NewRoomController(issuer TokenIssuer, engine Engine) *RoomController {
	return &RoomController{issuer: issuer, engine: engine}
}

// Join requests a credential for the participant and attaches to the room.
// Missing identity falls back to a generated guest id and the guest display
// name. No retry on failure; the error surfaces to the caller.
func (r *RoomController) Join(ctx context.Context, roomID, userID, userName string) error {
	if userID == "" {
		userID = uuid.New().String()
	}
	if userName == "" {
		userName = GuestName
	}

	cred, err := r.issuer.Issue(roomID, userID, userName)
	if err != nil {
		return err
	}

	session, err := r.engine.Join(ctx, cred, Callbacks{
		OnJoin: func() {
			r.mu.Lock()
			r.inMeeting = true
			r.mu.Unlock()
		},
		OnLeave: func() {
			r.End()
		},
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.session = session
	r.mu.Unlock()

	return nil
}

func (r *RoomController) InMeeting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inMeeting
}

// End releases the session and resets state, returning the route to navigate
// to. Safe to call any number of times; with no active session it is a no-op.
// The session is detached under the lock before Leave runs, so a re-entrant
// OnLeave callback sees no session and stops there.
func (r *RoomController) End() string {
	r.mu.Lock()
	session := r.session
	r.session = nil
	r.inMeeting = false
	r.mu.Unlock()

	if session != nil {
		session.Leave()
	}

	return HomeRoute
}

// Close runs the end-meeting procedure on teardown so an abandoned page does
// not leak the engine's resources.
func (r *RoomController) Close() {
	r.End()
}
