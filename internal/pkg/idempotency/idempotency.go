// Package idempotency tracks operation state in Redis so retried requests
// (same Idempotency-Key) run at most once.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInProgress is returned when the same operation is still running.
	ErrInProgress = errors.New("idempotency: operation already in progress")
	// ErrCompleted is returned when the operation already finished successfully.
	ErrCompleted = errors.New("idempotency: operation already completed")
	// ErrFailed is returned when a previous attempt failed.
	ErrFailed = errors.New("idempotency: previous attempt failed")
	// ErrInvalidState is returned when the stored state is unrecognized.
	ErrInvalidState = errors.New("idempotency: invalid state")
)

// State is the stored lifecycle state of an operation.
type State string

const (
	// StateNone means the operation can proceed.
	StateNone State = "none"
	// StateInProgress means the operation is currently running.
	StateInProgress State = "in_progress"
	// StateCompleted means the operation finished successfully.
	StateCompleted State = "completed"
	// StateFailed means a previous attempt failed.
	StateFailed State = "failed"
)

// Idempotency guards an operation behind a key so it runs at most once.
type Idempotency interface {
	// Exec runs fn unless an attempt with the same key is in progress or
	// already finished, in which case a sentinel error is returned.
	Exec(ctx context.Context, key string, fn func(context.Context) error) error
}

const (
	defaultLockTTL  = time.Minute
	defaultStateTTL = 10 * time.Minute
)

// RedisTracker implements Idempotency on a Redis client using SETNX.
type RedisTracker struct {
	client   *redis.Client
	prefix   string
	lockTTL  time.Duration
	stateTTL time.Duration
}

// NewRedis returns a Redis-backed tracker.
func NewRedis(client *redis.Client) *RedisTracker {
	return &RedisTracker{
		client:   client,
		prefix:   "idempotency:",
		lockTTL:  defaultLockTTL,
		stateTTL: defaultStateTTL,
	}
}

// acquire attempts to take the in-progress lock for key and reports the
// state found when the lock is already held.
func (t *RedisTracker) acquire(ctx context.Context, key string) (State, error) {
	fk := t.prefix + key

	acquired, err := t.client.SetNX(ctx, fk, string(StateInProgress), t.lockTTL).Result()
	if err != nil {
		return "", err
	}
	if acquired {
		return StateNone, nil
	}

	stored, err := t.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// Lock expired between SetNX and Get, try once more.
		acquired, err = t.client.SetNX(ctx, fk, string(StateInProgress), t.lockTTL).Result()
		if err != nil {
			return "", err
		}
		if acquired {
			return StateNone, nil
		}
		return "", ErrInvalidState
	}
	if err != nil {
		return "", err
	}

	switch State(stored) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(stored), nil
	default:
		return "", ErrInvalidState
	}
}

// Exec implements Idempotency.
func (t *RedisTracker) Exec(ctx context.Context, key string, fn func(context.Context) error) error {
	state, err := t.acquire(ctx, key)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	case StateFailed:
		return ErrFailed
	}

	fk := t.prefix + key
	if err := fn(ctx); err != nil {
		if markErr := t.client.Set(ctx, fk, string(StateFailed), t.stateTTL).Err(); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	return t.client.Set(ctx, fk, string(StateCompleted), t.stateTTL).Err()
}
