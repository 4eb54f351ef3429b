package snapshots

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-combat-tracker/internal/redis"
)

const (
	// Key pattern: combat_snapshot:{session_id}
	snapshotKeyPrefix = "combat_snapshot:"
)

// RedisConfig contains configuration for the Redis snapshot repository
type RedisConfig struct {
	Client redisclient.Client

	// Expiry applied on every save. Zero keeps snapshots until cleared.
	TTL time.Duration
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed snapshot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	snapshot, err := r.client.Get(ctx, Key(input.SessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &LoadOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to load snapshot for session %s", input.SessionID)
	}

	return &LoadOutput{Snapshot: snapshot, Found: true}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	if err := r.client.Set(ctx, Key(input.SessionID), input.Snapshot, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot for session %s", input.SessionID)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	deleted, err := r.client.Del(ctx, Key(input.SessionID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clear snapshot for session %s", input.SessionID)
	}

	return &ClearOutput{Existed: deleted > 0}, nil
}

// Key returns the Redis key for a session's snapshot
// Exposed for testing purposes
func Key(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}

// KeyPattern matches every snapshot key, for SCAN
const KeyPattern = snapshotKeyPrefix + "*"
