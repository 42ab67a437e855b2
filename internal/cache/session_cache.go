package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps serialized exam sessions for the read path
type SessionCache interface {
	Set(ctx context.Context, session *model.ExamSession) error
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, id string) (*model.ExamSession, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a Redis-backed session cache
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return fmt.Sprintf("exam_session:%s", id)
}

func (c *sessionCache) Set(ctx context.Context, session *model.ExamSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.ExamSession, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.ExamSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

// nopSessionCache is used when no Redis address is configured.
type nopSessionCache struct{}

// NewNopSessionCache returns a cache that never stores anything
func NewNopSessionCache() SessionCache {
	return nopSessionCache{}
}

func (nopSessionCache) Set(context.Context, *model.ExamSession) error { return nil }

func (nopSessionCache) Get(context.Context, string) (*model.ExamSession, error) { return nil, nil }

func (nopSessionCache) Delete(context.Context, string) error { return nil }
