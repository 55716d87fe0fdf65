package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

const (
	sessionKeyPrefix = "session:"
	openSessionsKey  = "sessions:waiting"
	sessionsChannel  = "sessions:changes"

	maxUpdateAttempts = 5
)

type SessionRepository interface {
	CreateSession(ctx context.Context, initial *entity.Session) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSession(ctx context.Context, id string, update *entity.SessionUpdate) error
	UpdateSessionIfRevision(ctx context.Context, id string, revision int64, update *entity.SessionUpdate) error
	DeleteByID(ctx context.Context, id string) error

	ListOpenSessions(ctx context.Context) ([]*entity.Session, error)
	SubscribeOpenSessions(ctx context.Context, handler func([]*entity.Session)) (func(), error)
	SubscribeSession(ctx context.Context, id string, handler func(*entity.Session)) (func(), error)
}

type dbSession struct {
	logger *slog.Logger
	client *redis.Client
}

func NewSessionRepository(logger *slog.Logger, client *redis.Client) SessionRepository {
	return &dbSession{
		logger: logger.With("component", "sessionRepository"),
		client: client,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func sessionChannel(id string) string {
	return sessionKeyPrefix + id + ":changes"
}

// CreateSession - stores a new waiting session under a fresh id and announces it to the lobby.
func (that *dbSession) CreateSession(ctx context.Context, initial *entity.Session) (string, error) {
	session := initial.Clone()
	session.ID = uuid.NewString()
	session.Status = entity.StatusWaiting
	session.Winner = entity.WinnerNone
	session.Revision = 1

	if session.CurrentPlayer == entity.EmptyCell {
		session.CurrentPlayer = entity.MarkerX
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	fields, err := encodeSession(session)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrStoreWrite, err)
	}

	event, err := encodeEvent(entity.ChangeAdded, session)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrStoreWrite, err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, sessionKey(session.ID), fields)
		pipe.ZAdd(ctx, openSessionsKey, redis.Z{Score: lobbyScore(session), Member: session.ID})
		publishChange(ctx, pipe, session.ID, event)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to create session: %w", apperror.ErrStoreWrite, err)
	}

	return session.ID, nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	fields, err := that.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if len(fields) == 0 {
		return nil, apperror.ErrSessionNotFound
	}

	session, err := decodeSession(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	return session, nil
}

// UpdateSession - partial write, last writer wins. No revision check is made.
func (that *dbSession) UpdateSession(ctx context.Context, id string, update *entity.SessionUpdate) error {
	return that.update(ctx, id, update, nil)
}

// UpdateSessionIfRevision - partial write that only lands if the stored revision still equals revision.
func (that *dbSession) UpdateSessionIfRevision(ctx context.Context, id string, revision int64, update *entity.SessionUpdate) error {
	return that.update(ctx, id, update, &revision)
}

func (that *dbSession) update(ctx context.Context, id string, update *entity.SessionUpdate, expected *int64) error {
	if err := update.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrStoreWrite, err)
	}

	key := sessionKey(id)

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}

		if len(fields) == 0 {
			return apperror.ErrSessionNotFound
		}

		session, err := decodeSession(fields)
		if err != nil {
			return err
		}

		if expected != nil && session.Revision != *expected {
			return apperror.ErrStaleRevision
		}

		if err = update.ApplyTo(session); err != nil {
			return err
		}
		session.Revision++

		encoded, err := encodeSession(session)
		if err != nil {
			return err
		}

		event, err := encodeEvent(entity.ChangeModified, session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, encoded)
			if session.IsWaiting() {
				pipe.ZAdd(ctx, openSessionsKey, redis.Z{Score: lobbyScore(session), Member: session.ID})
			} else {
				pipe.ZRem(ctx, openSessionsKey, session.ID)
			}
			publishChange(ctx, pipe, session.ID, event)
			return nil
		})

		return err
	}

	for range maxUpdateAttempts {
		err := that.client.Watch(ctx, txf, key)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr) && expected != nil:
			return fmt.Errorf("%w: %w", apperror.ErrStoreWrite, apperror.ErrStaleRevision)
		case errors.Is(err, redis.TxFailedErr):
			// someone else committed between our read and write; read again
			continue
		default:
			return fmt.Errorf("%w: failed to update session %s: %w", apperror.ErrStoreWrite, id, err)
		}
	}

	return fmt.Errorf("%w: session %s kept changing after %d attempts", apperror.ErrStoreWrite, id, maxUpdateAttempts)
}

// DeleteByID - removes a session and tells subscribers it is gone.
func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	session, err := that.GetByID(ctx, id)
	if err != nil {
		return err
	}

	event, err := encodeEvent(entity.ChangeRemoved, session)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrStoreWrite, err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.ZRem(ctx, openSessionsKey, id)
		publishChange(ctx, pipe, id, event)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete session %s: %w", apperror.ErrStoreWrite, id, err)
	}

	return nil
}

// ListOpenSessions - every waiting session, oldest first.
func (that *dbSession) ListOpenSessions(ctx context.Context) ([]*entity.Session, error) {
	ids, err := that.client.ZRange(ctx, openSessionsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read lobby index: %w", err)
	}

	sessions := make([]*entity.Session, 0, len(ids))
	if len(ids) == 0 {
		return sessions, nil
	}

	cmds, err := that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.HGetAll(ctx, sessionKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load open sessions: %w", err)
	}

	for i, cmd := range cmds {
		fields, err := cmd.(*redis.MapStringStringCmd).Result()
		if err != nil || len(fields) == 0 {
			continue
		}

		session, err := decodeSession(fields)
		if err != nil {
			that.logger.Warn("skipping undecodable session", "sessionID", ids[i], "error", err)
			continue
		}

		// the index may lag behind a status change
		if session.IsWaiting() {
			sessions = append(sessions, session)
		}
	}

	return sessions, nil
}

// SubscribeOpenSessions - calls handler with the open set now and again after every lobby change.
func (that *dbSession) SubscribeOpenSessions(ctx context.Context, handler func([]*entity.Session)) (func(), error) {
	log := that.logger.With("method", "SubscribeOpenSessions")

	// ids delivered last time, so that a session leaving the lobby triggers a refresh too
	delivered := map[string]struct{}{}

	refresh := func(ctx context.Context) {
		sessions, err := that.ListOpenSessions(ctx)
		if err != nil {
			log.Error("failed to list open sessions", "error", err)
			return
		}

		delivered = make(map[string]struct{}, len(sessions))
		for _, session := range sessions {
			delivered[session.ID] = struct{}{}
		}

		handler(sessions)
	}

	onEvent := func(ctx context.Context, event *entity.ChangeEvent) {
		if event.Session == nil {
			return
		}

		_, listed := delivered[event.Session.ID]
		if !listed && !event.Session.IsWaiting() {
			return
		}

		refresh(ctx)
	}

	return that.subscribe(ctx, sessionsChannel, refresh, onEvent)
}

// SubscribeSession - calls handler with the new state after every modification of one session.
// Additions and removals are not delivered.
func (that *dbSession) SubscribeSession(ctx context.Context, id string, handler func(*entity.Session)) (func(), error) {
	onEvent := func(_ context.Context, event *entity.ChangeEvent) {
		if event.Type != entity.ChangeModified || event.Session == nil {
			return
		}

		handler(event.Session)
	}

	return that.subscribe(ctx, sessionChannel(id), nil, onEvent)
}

// subscribe listens on channel until ctx ends or the returned func is called.
// onStart, when set, runs on the delivery goroutine before the first event.
func (that *dbSession) subscribe(
	ctx context.Context,
	channel string,
	onStart func(ctx context.Context),
	onEvent func(ctx context.Context, event *entity.ChangeEvent),
) (func(), error) {
	log := that.logger.With("method", "subscribe", "channel", channel)

	pubsub := that.client.Subscribe(ctx, channel)

	// wait for the confirmation so no event published after we return is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	messages := pubsub.Channel()

	go func() {
		defer func() {
			if err := pubsub.Close(); err != nil {
				log.Warn("failed to close subscription", "error", err)
			}
		}()

		if onStart != nil {
			onStart(subCtx)
		}

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					log.Warn("subscription ended by the store")
					return
				}

				var event entity.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Error("failed to decode change event", "error", err)
					continue
				}

				if subCtx.Err() != nil {
					return
				}

				onEvent(subCtx, &event)
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(cancel)
	}

	return unsubscribe, nil
}

func publishChange(ctx context.Context, pipe redis.Pipeliner, id string, event []byte) {
	pipe.Publish(ctx, sessionChannel(id), event)
	pipe.Publish(ctx, sessionsChannel, event)
}

func lobbyScore(session *entity.Session) float64 {
	return float64(session.CreatedAt.UnixMilli())
}

func encodeEvent(changeType entity.ChangeType, session *entity.Session) ([]byte, error) {
	event, err := json.Marshal(entity.ChangeEvent{Type: changeType, Session: session})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change event: %w", err)
	}

	return event, nil
}

func encodeSession(session *entity.Session) (map[string]any, error) {
	board, err := json.Marshal(session.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return map[string]any{
		"id":             session.ID,
		"host_id":        session.HostID,
		"host_name":      session.HostName,
		"guest_id":       session.GuestID,
		"guest_name":     session.GuestName,
		"board":          string(board),
		"current_player": string(session.CurrentPlayer),
		"status":         string(session.Status),
		"winner":         string(session.Winner),
		"created_at":     session.CreatedAt.UTC().Format(time.RFC3339Nano),
		"last_move_at":   session.LastMoveAt.UTC().Format(time.RFC3339Nano),
		"revision":       session.Revision,
	}, nil
}

func decodeSession(fields map[string]string) (*entity.Session, error) {
	session := &entity.Session{
		ID:            fields["id"],
		HostID:        fields["host_id"],
		HostName:      fields["host_name"],
		GuestID:       fields["guest_id"],
		GuestName:     fields["guest_name"],
		CurrentPlayer: entity.Marker(fields["current_player"]),
		Status:        entity.Status(fields["status"]),
		Winner:        entity.Winner(fields["winner"]),
	}

	if err := json.Unmarshal([]byte(fields["board"]), &session.Board); err != nil {
		return nil, err
	}

	var err error
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["created_at"]); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if session.LastMoveAt, err = time.Parse(time.RFC3339Nano, fields["last_move_at"]); err != nil {
		return nil, fmt.Errorf("failed to parse last_move_at: %w", err)
	}

	if session.Revision, err = strconv.ParseInt(fields["revision"], 10, 64); err != nil {
		return nil, fmt.Errorf("failed to parse revision: %w", err)
	}

	return session, nil
}
