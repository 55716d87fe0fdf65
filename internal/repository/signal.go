package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

var ErrSignalChannelClosed = errors.New("signal channel closed")

// SignalRepository - relays peer-link negotiation payloads between the two sides of a session.
type SignalRepository interface {
	PublishSignal(ctx context.Context, sessionID string, signal *entity.Signal) error
	AwaitSignal(ctx context.Context, sessionID string, role entity.PeerRole) (*entity.Signal, error)
}

type dbSignal struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSignalRepository(client *redis.Client, ttl time.Duration) SignalRepository {
	return &dbSignal{
		client: client,
		ttl:    ttl,
	}
}

func signalKey(sessionID string, role entity.PeerRole) string {
	return sessionKeyPrefix + sessionID + ":signal:" + string(role)
}

// PublishSignal - keeps the latest signal for late readers and pushes it to anyone already waiting.
func (that *dbSignal) PublishSignal(ctx context.Context, sessionID string, signal *entity.Signal) error {
	payload, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to marshal signal: %w", err)
	}

	key := signalKey(sessionID, signal.Role)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, payload, that.ttl)
		pipe.Publish(ctx, key, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish signal: %w", err)
	}

	return nil
}

// AwaitSignal - returns the stored signal of role, or blocks until one is published or ctx ends.
func (that *dbSignal) AwaitSignal(ctx context.Context, sessionID string, role entity.PeerRole) (*entity.Signal, error) {
	key := signalKey(sessionID, role)

	// subscribe before reading so a publish between the two is not lost
	pubsub := that.client.Subscribe(ctx, key)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to signals: %w", err)
	}

	stored, err := that.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return decodeSignal(stored)
	case !errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("failed to get signal: %w", err)
	}

	select {
	case msg, ok := <-pubsub.Channel():
		if !ok {
			return nil, ErrSignalChannelClosed
		}
		return decodeSignal(msg.Payload)
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to await %s signal: %w", role, ctx.Err())
	}
}

func decodeSignal(payload string) (*entity.Signal, error) {
	var signal entity.Signal
	if err := json.Unmarshal([]byte(payload), &signal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signal: %w", err)
	}

	return &signal, nil
}
