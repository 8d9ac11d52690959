package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inventory-service/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// SaveSession stores a session under its token with the given TTL.
func (c *Client) SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.rdb.Set(ctx, sessionKey(session.Token), payload, ttl).Err()
}

// GetSession resolves a token to its session. Returns (nil, nil) for unknown
// or expired tokens.
func (c *Client) GetSession(ctx context.Context, token string) (*models.Session, error) {
	payload, err := c.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session, logging the caller out.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionKey(token)).Err()
}

// RefreshSession extends a live session's TTL on activity.
func (c *Client) RefreshSession(ctx context.Context, token string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, sessionKey(token), ttl).Err()
}
