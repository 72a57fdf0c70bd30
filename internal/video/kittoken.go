package video

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/veljkom/meetlite-api/internal/config"
)

// ErrNotConfigured is returned when the engine credentials are missing from
// the environment.
var ErrNotConfigured = errors.New("video engine credentials not configured")

// Credential is a short-lived kit token scoped to one (room, participant)
// pair. The hosted engine verifies it against the shared server secret.
type Credential struct {
	Token     string
	RoomID    string
	UserID    string
	UserName  string
	ExpiresAt time.Time
}

// TokenIssuer is the credential-issuing capability of the external video
// engine, split out so handlers and the room controller can be tested with a
// fake.
type TokenIssuer interface {
	Issue(roomID, userID, userName string) (*Credential, error)
}

type kitPayload struct {
	AppID    int64  `json:"app_id"`
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Nonce    uint64 `json:"nonce"`
	Ctime    int64  `json:"ctime"`
	Expire   int64  `json:"expire"`
}

// KitTokenIssuer signs kit tokens with the engine's server secret.
type KitTokenIssuer struct {
	appID  int64
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewKitTokenIssuer(cfg config.VideoConfig) *KitTokenIssuer {
	return &KitTokenIssuer{
		appID:  cfg.AppID,
		secret: []byte(cfg.ServerSecret),
		ttl:    cfg.TokenExpiry,
		now:    time.Now,
	}
}

func (i *KitTokenIssuer) Issue(roomID, userID, userName string) (*Credential, error) {
	if i.appID == 0 || len(i.secret) == 0 {
		return nil, ErrNotConfigured
	}

	var nonceBytes [8]byte
	if _, err := rand.Read(nonceBytes[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)

	payload := kitPayload{
		AppID:    i.appID,
		RoomID:   roomID,
		UserID:   userID,
		UserName: userName,
		Nonce:    binary.BigEndian.Uint64(nonceBytes[:]),
		Ctime:    now.Unix(),
		Expire:   expiresAt.Unix(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token payload: %w", err)
	}

	mac := hmac.New(sha256.New, i.secret)
	mac.Write(raw)

	token := "04" + base64.RawURLEncoding.EncodeToString(raw) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return &Credential{
		Token:     token,
		RoomID:    roomID,
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks a token's signature and expiry and returns the room and
// participant it was issued for. The hosted engine does the authoritative
// check; this exists for tests and diagnostics.
func (i *KitTokenIssuer) Verify(token string) (roomID, userID string, err error) {
	rest, ok := strings.CutPrefix(token, "04")
	if !ok {
		return "", "", errors.New("unknown token version")
	}

	body, sig, ok := strings.Cut(rest, ".")
	if !ok {
		return "", "", errors.New("malformed token")
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", "", fmt.Errorf("malformed token payload: %w", err)
	}

	wantSig, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", "", fmt.Errorf("malformed token signature: %w", err)
	}

	mac := hmac.New(sha256.New, i.secret)
	mac.Write(raw)
	if !hmac.Equal(mac.Sum(nil), wantSig) {
		return "", "", errors.New("invalid token signature")
	}

	var payload kitPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", "", fmt.Errorf("malformed token payload: %w", err)
	}

	if i.now().Unix() > payload.Expire {
		return "", "", errors.New("token expired")
	}

	return payload.RoomID, payload.UserID, nil
}
