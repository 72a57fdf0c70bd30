package video

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	leaves int
}

func (s *fakeSession) Leave() { s.leaves++ }

type fakeEngine struct {
	joinErr  error
	lastCred *Credential
	lastCB   Callbacks
	session  *fakeSession
}

func (e *fakeEngine) Join(_ context.Context, cred *Credential, cb Callbacks) (Session, error) {
	if e.joinErr != nil {
		return nil, e.joinErr
	}
	e.lastCred = cred
	e.lastCB = cb
	e.session = &fakeSession{}
	return e.session, nil
}

type fakeIssuer struct {
	err  error
	last *Credential
}

func (f *fakeIssuer) Issue(roomID, userID, userName string) (*Credential, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = &Credential{Token: "04fake", RoomID: roomID, UserID: userID, UserName: userName}
	return f.last, nil
}

func TestRoomController_JoinFlipsStateOnCallback(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := NewRoomController(&fakeIssuer{}, engine)

	err := ctrl.Join(context.Background(), "room-1", "user-1", "Alice")
	require.NoError(t, err)

	// Not in-meeting until the engine confirms the join
	assert.False(t, ctrl.InMeeting())
	engine.lastCB.OnJoin()
	assert.True(t, ctrl.InMeeting())
}

func TestRoomController_GuestFallback(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := NewRoomController(&fakeIssuer{}, engine)

	err := ctrl.Join(context.Background(), "room-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, GuestName, engine.lastCred.UserName)
	_, err = uuid.Parse(engine.lastCred.UserID)
	assert.NoError(t, err, "guest id should be a generated uuid")
}

func TestRoomController_EndIsIdempotent(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := NewRoomController(&fakeIssuer{}, engine)

	require.NoError(t, ctrl.Join(context.Background(), "room-1", "user-1", "Alice"))
	engine.lastCB.OnJoin()

	route := ctrl.End()
	assert.Equal(t, HomeRoute, route)
	assert.False(t, ctrl.InMeeting())
	assert.Equal(t, 1, engine.session.leaves)

	// Second end is a no-op, not a second Leave
	ctrl.End()
	assert.Equal(t, 1, engine.session.leaves)
}

func TestRoomController_LeaveCallbackEndsOnce(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := NewRoomController(&fakeIssuer{}, engine)

	require.NoError(t, ctrl.Join(context.Background(), "room-1", "user-1", "Alice"))
	engine.lastCB.OnJoin()

	// Peer-initiated leave routes through the same end procedure
	engine.lastCB.OnLeave()
	assert.False(t, ctrl.InMeeting())
	assert.Equal(t, 1, engine.session.leaves)

	// Teardown after the meeting already ended does nothing further
	ctrl.Close()
	assert.Equal(t, 1, engine.session.leaves)
}

func TestRoomController_IssueFailureSurfaces(t *testing.T) {
	wantErr := errors.New("issuer down")
	ctrl := NewRoomController(&fakeIssuer{err: wantErr}, &fakeEngine{})

	err := ctrl.Join(context.Background(), "room-1", "user-1", "Alice")
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, ctrl.InMeeting())
}

func TestRoomController_JoinFailureSurfaces(t *testing.T) {
	wantErr := errors.New("engine refused")
	ctrl := NewRoomController(&fakeIssuer{}, &fakeEngine{joinErr: wantErr})

	err := ctrl.Join(context.Background(), "room-1", "user-1", "Alice")
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, ctrl.InMeeting())
}
