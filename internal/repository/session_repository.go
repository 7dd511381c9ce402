package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps login sessions in Redis as session:<id> -> userID.
type SessionRepository interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionRepository struct {
	redisClient redisv9.Cmdable
	ttl         time.Duration
}

func NewSessionRepository(redisClient redisv9.Cmdable, ttl time.Duration) SessionRepository {
	return &sessionRepository{redisClient: redisClient, ttl: ttl}
}

// Create stores a new session for userID and returns its ID.
func (r *sessionRepository) Create(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.New().String()
	if err := r.redisClient.Set(ctx, sessionKeyPrefix+sessionID, userID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

// Get resolves a session ID to its user ID. Expired and unknown IDs return ErrSessionNotFound.
func (r *sessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionNotFound
	}
	userID, err := r.redisClient.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redisv9.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
