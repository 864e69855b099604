package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/zxclownhd/fishing-app/pkg/config"
	redisclient "github.com/zxclownhd/fishing-app/pkg/redis"
)

func newTestManager(t *testing.T) (*Manager, *redisclient.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })

	client := redisclient.Wrap(raw)
	manager, err := NewManager(client, config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 120})
	require.NoError(t, err)
	return manager, client, mr
}

func TestNewManagerValidatesTTL(t *testing.T) {
	client := redisclient.Wrap(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}))

	_, err := NewManager(nil, config.JWTConfig{ExpirationMinutes: 1, RefreshTokenTTLMinutes: 2})
	require.Error(t, err)
	_, err = NewManager(client, config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 0})
	require.Error(t, err)
	_, err = NewManager(client, config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 60})
	require.Error(t, err)
}

func TestManagerGenerateAndRotate(t *testing.T) {
	manager, client, mr := newTestManager(t)
	ctx := context.Background()

	accessID := "access-123"
	token, err := manager.Generate(ctx, "user-1", accessID)
	require.NoError(t, err)

	stored, err := client.SessionToken(ctx, accessID)
	require.NoError(t, err)
	require.Equal(t, token, stored)
	require.Equal(t, 2*time.Hour, mr.TTL(redisclient.SessionKey(accessID)))

	_, _, err = manager.Rotate(ctx, "user-1", accessID, "wrong")
	require.True(t, errors.Is(err, ErrInvalidRefreshToken))

	newAccessID, newToken, err := manager.Rotate(ctx, "user-1", accessID, token)
	require.NoError(t, err)
	require.NotEqual(t, accessID, newAccessID)

	ok, err := manager.HasSession(ctx, accessID)
	require.NoError(t, err)
	require.False(t, ok, "old access key left behind")

	stored, err = client.SessionToken(ctx, newAccessID)
	require.NoError(t, err)
	require.Equal(t, newToken, stored)

	members, err := client.UserSessions(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, []string{newAccessID}, members)
}

func TestManagerRotateUnknownSession(t *testing.T) {
	manager, _, _ := newTestManager(t)
	_, _, err := manager.Rotate(context.Background(), "user-1", "missing", "token")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = manager.Rotate(context.Background(), "user-1", "", "token")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestManagerRevoke(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := manager.Generate(ctx, "user-1", "a")
	require.NoError(t, err)

	ok, err := manager.HasSession(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, manager.Revoke(ctx, "user-1", "a"))
	ok, err = manager.HasSession(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManagerRevokeAllKeepsCurrentSession(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := manager.Generate(ctx, "user-1", id)
		require.NoError(t, err)
	}
	_, err := manager.Generate(ctx, "user-2", "z")
	require.NoError(t, err)

	require.NoError(t, manager.RevokeAll(ctx, "user-1", "b"))

	for id, want := range map[string]bool{"a": false, "b": true, "c": false, "z": true} {
		ok, err := manager.HasSession(ctx, id)
		require.NoError(t, err)
		require.Equal(t, want, ok, "session %s", id)
	}
}

func TestHasSessionRequiresAccessID(t *testing.T) {
	manager, _, _ := newTestManager(t)
	_, err := manager.HasSession(context.Background(), " ")
	require.Error(t, err)
}
