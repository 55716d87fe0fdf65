package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"nhooyr.io/websocket/wsjson"
)

const (
	actionConnect      = "connect"
	actionLobbyWatch   = "lobby:watch"
	actionLobbyUnwatch = "lobby:unwatch"
	actionLobbyCreate  = "lobby:create"
	actionLobbyJoin    = "lobby:join"
	actionLobbyCancel  = "lobby:cancel"
	actionGameTurn     = "game:turn"
	actionGameLeave    = "game:leave"

	// pushed by the server
	actionLobbySessions = "lobby:sessions"
	actionGameState     = "game:state"
	actionGameEnd       = "game:end"
)

var (
	errMalformedMessage = errors.New("malformed message")
	errUnknownAction    = errors.New("unknown action")
	errNotConnected     = errors.New("connect first")
	errNotInGame        = errors.New("not in a game")
	errMissingPayload   = errors.New("missing payload field")
	errInternal         = errors.New("internal error")
)

// errors the client is allowed to see as they are
var publicErrors = []error{
	errMalformedMessage,
	errUnknownAction,
	errNotConnected,
	errNotInGame,
	errMissingPayload,
	apperror.ErrGameFinished,
	apperror.ErrGameIsNotStarted,
	apperror.ErrNotYourTurn,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidCell,
	apperror.ErrSessionNotFound,
	apperror.ErrSessionNotJoinable,
	apperror.ErrOwnSession,
	apperror.ErrStaleRevision,
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player   *entity.Player    `json:"player,omitempty"`
	Game     *entity.Session   `json:"game,omitempty"`
	Sessions []*entity.Session `json:"sessions,omitempty"`
	Cell     *int              `json:"cell,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func decodePayload(message *Message) (*Payload, error) {
	var payload Payload
	if len(message.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	return &payload, nil
}

func (that *Server) sendMessage(ctx context.Context, client *client, action string, payload *Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = wsjson.Write(writeCtx, client.conn, Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// push - a server initiated message. Failures only get logged, the read loop notices a dead connection.
func (that *Server) push(ctx context.Context, client *client, action string, payload *Payload) {
	if err := that.sendMessage(ctx, client, action, payload); err != nil {
		that.logger.Warn("failed to push message", "action", action, "error", err)
	}
}

func (that *Server) sendError(ctx context.Context, client *client, action string, err error) {
	that.push(ctx, client, action, &Payload{Error: publicError(err).Error()})
}

func publicError(err error) error {
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known
		}
	}

	return errInternal
}
