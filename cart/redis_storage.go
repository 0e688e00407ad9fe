package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 7 * 24 * time.Hour

// RedisStorage persists cart snapshots under "cart:<session>". The TTL is
// refreshed on every write, so an active cart never expires mid-session.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, "cart:"+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, snapshot []byte) error {
	return r.client.Set(ctx, "cart:"+sessionID, snapshot, snapshotTTL).Err()
}
