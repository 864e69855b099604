package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/config"
	redisclient "github.com/zxclownhd/fishing-app/pkg/redis"
)

const refreshTokenBytes = 32

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type store interface {
	PutSession(ctx context.Context, userID, sessionID, token string, ttl time.Duration) error
	SessionToken(ctx context.Context, sessionID string) (string, error)
	UserSessions(ctx context.Context, userID string) ([]string, error)
	DropSessions(ctx context.Context, userID string, sessionIDs ...string) error
}

// Manager issues and rotates refresh tokens. The access token jti doubles as
// the session id, so a revoked session also invalidates its access token.
type Manager struct {
	store store
	ttl   time.Duration
}

// AccessSessionChecker is what the auth middleware needs.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager requires a refresh lifetime longer than the access lifetime so a
// live access token always has a session behind it.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, errors.New("session store is required")
	}
	ttl, accessTTL := cfg.RefreshTokenTTL(), cfg.AccessTokenTTL()
	switch {
	case ttl <= 0:
		return nil, errors.New("refresh token ttl must be positive")
	case ttl <= accessTTL:
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}
	return &Manager{store: client, ttl: ttl}, nil
}

// Generate opens a session for accessID and returns its refresh token.
func (m *Manager) Generate(ctx context.Context, userID, accessID string) (string, error) {
	if blank(userID) || blank(accessID) {
		return "", errors.New("user id and access id are required")
	}
	token, err := newRefreshToken()
	if err != nil {
		return "", err
	}
	if err := m.store.PutSession(ctx, userID, accessID, token, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Rotate trades a valid refresh token for a fresh session. The old session is
// closed once the new one is stored.
func (m *Manager) Rotate(ctx context.Context, userID, oldAccessID, provided string) (string, string, error) {
	if blank(oldAccessID) || blank(provided) {
		return "", "", ErrInvalidRefreshToken
	}
	stored, err := m.store.SessionToken(ctx, oldAccessID)
	switch {
	case errors.Is(err, redisclient.ErrNil):
		return "", "", ErrInvalidRefreshToken
	case err != nil:
		return "", "", err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) != 1 {
		return "", "", ErrInvalidRefreshToken
	}

	accessID := NewAccessID()
	token, err := m.Generate(ctx, userID, accessID)
	if err != nil {
		return "", "", err
	}
	if err := m.Revoke(ctx, userID, oldAccessID); err != nil {
		return "", "", err
	}
	return accessID, token, nil
}

// Revoke closes one session. userID may be empty when unknown.
func (m *Manager) Revoke(ctx context.Context, userID, accessID string) error {
	if blank(accessID) {
		return errors.New("access id is required")
	}
	return m.store.DropSessions(ctx, userID, accessID)
}

// RevokeAll closes every session of the user except keepAccessID.
func (m *Manager) RevokeAll(ctx context.Context, userID, keepAccessID string) error {
	if blank(userID) {
		return errors.New("user id is required")
	}
	ids, err := m.store.UserSessions(ctx, userID)
	if err != nil {
		return err
	}
	ids = slices.DeleteFunc(ids, func(id string) bool { return id == keepAccessID })
	return m.store.DropSessions(ctx, userID, ids...)
}

func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if blank(accessID) {
		return false, errors.New("access id is required")
	}
	_, err := m.store.SessionToken(ctx, accessID)
	switch {
	case errors.Is(err, redisclient.ErrNil):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// NewAccessID returns a fresh jti.
func NewAccessID() string {
	return uuid.NewString()
}

func newRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
