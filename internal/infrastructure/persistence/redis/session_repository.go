// Package redis provides the redis-backed session store
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/proteinempire/ingredients/internal/domain/substitution"
	"github.com/proteinempire/ingredients/internal/infrastructure/config"
	"github.com/proteinempire/ingredients/internal/ports/outbound"
)

const keyPrefix = "session:"

// NewClient creates a redis client and verifies the connection
func NewClient(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr(), err)
	}

	logger.Info("Redis connected", zap.String("addr", cfg.RedisAddr()))
	return client, nil
}

// SessionRepository stores session snapshots as JSON under a TTL. Sessions
// are rebuilt against the shared catalog on read.
type SessionRepository struct {
	client  *redis.Client
	catalog substitution.Catalog
	ttl     time.Duration
	logger  *zap.Logger
}

// NewSessionRepository creates a redis-backed session store
func NewSessionRepository(
	client *redis.Client,
	catalog substitution.Catalog,
	ttl time.Duration,
	logger *zap.Logger,
) *SessionRepository {
	return &SessionRepository{
		client:  client,
		catalog: catalog,
		ttl:     ttl,
		logger:  logger.Named("redis-sessions"),
	}
}

var _ outbound.SessionRepository = (*SessionRepository)(nil)

// Save serializes the session snapshot and refreshes the TTL
func (r *SessionRepository) Save(ctx context.Context, id uuid.UUID, session *substitution.Session) error {
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}

	if err := r.client.Set(ctx, sessionKey(id), data, r.ttl).Err(); err != nil {
		r.logger.Error("Session save failed", zap.String("session_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

// Find loads a snapshot and rebuilds the session, or (nil, nil) when the key
// is missing or expired
func (r *SessionRepository) Find(ctx context.Context, id uuid.UUID) (*substitution.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Session read failed", zap.String("session_id", id.String()), zap.Error(err))
		return nil, err
	}

	var snap substitution.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return substitution.FromSnapshot(r.catalog, snap), nil
}

// Delete removes a session; deleting an unknown ID is not an error
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Session delete failed", zap.String("session_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}
