package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMirrorMiss = errors.New("cache mirror miss")

type mirrorEnvelope struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

// RedisMirror keeps cached catalog responses across restarts. Entries get
// the same TTL as the in-memory tier so Redis expiry handles staleness.
type RedisMirror struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMirror(client *redis.Client, ttl time.Duration) *RedisMirror {
	return &RedisMirror{client: client, ttl: ttl}
}

func (m *RedisMirror) Read(ctx context.Context, key string) ([]byte, time.Time, error) {
	data, err := m.client.Get(ctx, "cache:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, ErrMirrorMiss
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	var env mirrorEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, time.Time{}, ErrMirrorMiss
	}
	return env.Payload, env.StoredAt, nil
}

func (m *RedisMirror) Write(ctx context.Context, key string, payload []byte, storedAt time.Time) error {
	data, err := json.Marshal(mirrorEnvelope{StoredAt: storedAt, Payload: payload})
	if err != nil {
		return err
	}
	return m.client.Set(ctx, "cache:"+key, data, m.ttl).Err()
}
