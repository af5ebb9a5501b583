package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const sessionKeyPrefix = "session:"

type SessionRepository interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository stores sessions in Redis. Every save refreshes the
// expiration to ttl, zero keeps keys until they are deleted.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &dbSession{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSession) Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error {
	sessionJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	err = that.client.Set(ctx, sessionKeyPrefix+id, sessionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+id).Bytes()

	if errors.Is(err, redis.Nil) {
		return tictactoe.Snapshot{}, apperror.ErrSessionNotFound
	}

	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	var snapshot tictactoe.Snapshot
	if err = json.Unmarshal(response, &snapshot); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return snapshot, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}
