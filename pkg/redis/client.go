package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/logger"
)

// ErrNil is returned by SessionToken when the session does not exist.
var ErrNil = redis.Nil

var errNotInitialized = errors.New("redis client not initialized")

// firstNonZero mirrors cmp.Or (Go 1.22+) for the Go 1.21 toolchain: it returns
// the first argument that is not the zero value.
func firstNonZero[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// Client stores login sessions. A session is a string key holding its refresh
// token; a per-user set indexes the session ids so they can be dropped
// together. Writes touching both go through MULTI/EXEC.
type Client struct {
	rdb *redis.Client
}

// New connects using cfg and fails unless the server answers PING.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"addr":      opts.Addr,
			"db":        opts.DB,
			"pool_size": opts.PoolSize,
		}), "redis.connected")
	}
	return &Client{rdb: rdb}, nil
}

// Wrap uses an already configured go-redis client.
func Wrap(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// optionsFromConfig prefers the URL; pool and timeout settings from cfg fill
// whatever the URL left unset.
func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	opts := &redis.Options{Addr: cfg.Address, Password: cfg.Password}
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	case cfg.Address == "":
		return nil, errors.New("redis url or address is required")
	}
	opts.DB = firstNonZero(opts.DB, cfg.DB)
	opts.PoolSize = firstNonZero(opts.PoolSize, cfg.PoolSize)
	opts.MinIdleConns = firstNonZero(opts.MinIdleConns, cfg.MinIdleConns)
	opts.DialTimeout = firstNonZero(opts.DialTimeout, cfg.DialTimeout)
	opts.ReadTimeout = firstNonZero(opts.ReadTimeout, cfg.ReadTimeout)
	opts.WriteTimeout = firstNonZero(opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

// PutSession stores token under sessionID and indexes the id for userID. Both
// keys share ttl.
func (c *Client) PutSession(ctx context.Context, userID, sessionID, token string, ttl time.Duration) error {
	if c.rdb == nil {
		return errNotInitialized
	}
	userKey := UserSessionsKey(userID)
	_, err := c.rdb.TxPipelined(ctx, func(tx redis.Pipeliner) error {
		tx.Set(ctx, SessionKey(sessionID), token, ttl)
		tx.SAdd(ctx, userKey, sessionID)
		if ttl > 0 {
			tx.Expire(ctx, userKey, ttl)
		}
		return nil
	})
	return err
}

// SessionToken returns the refresh token of sessionID, or ErrNil.
func (c *Client) SessionToken(ctx context.Context, sessionID string) (string, error) {
	if c.rdb == nil {
		return "", errNotInitialized
	}
	return c.rdb.Get(ctx, SessionKey(sessionID)).Result()
}

// UserSessions lists the session ids indexed for userID. Ids whose session key
// already expired may still be listed.
func (c *Client) UserSessions(ctx context.Context, userID string) ([]string, error) {
	if c.rdb == nil {
		return nil, errNotInitialized
	}
	return c.rdb.SMembers(ctx, UserSessionsKey(userID)).Result()
}

// DropSessions deletes the given sessions and, when userID is set, removes
// them from the user's index.
func (c *Client) DropSessions(ctx context.Context, userID string, sessionIDs ...string) error {
	if c.rdb == nil {
		return errNotInitialized
	}
	if len(sessionIDs) == 0 {
		return nil
	}
	keys := make([]string, len(sessionIDs))
	members := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		keys[i] = SessionKey(id)
		members[i] = id
	}
	_, err := c.rdb.TxPipelined(ctx, func(tx redis.Pipeliner) error {
		tx.Del(ctx, keys...)
		if strings.TrimSpace(userID) != "" {
			tx.SRem(ctx, UserSessionsKey(userID), members...)
		}
		return nil
	})
	return err
}

// AddHook instruments every command sent through the client.
func (c *Client) AddHook(h redis.Hook) {
	if c.rdb != nil {
		c.rdb.AddHook(h)
	}
}

func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return errNotInitialized
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// SessionKey is the key holding the refresh token of one session.
func SessionKey(sessionID string) string {
	return "fishing:session:access:" + strings.TrimSpace(sessionID)
}

// UserSessionsKey is the set of live session ids of one user.
func UserSessionsKey(userID string) string {
	return "fishing:session:user:" + strings.TrimSpace(userID)
}
