package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

type lobbyStore interface {
	CreateSession(ctx context.Context, initial *entity.Session) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSessionIfRevision(ctx context.Context, id string, revision int64, update *entity.SessionUpdate) error
	DeleteByID(ctx context.Context, id string) error
	ListOpenSessions(ctx context.Context) ([]*entity.Session, error)
	SubscribeOpenSessions(ctx context.Context, handler func([]*entity.Session)) (func(), error)
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type LobbyController struct {
	logger     *slog.Logger
	store      lobbyStore
	playerRepo playerRepo
	now        func() time.Time
}

func NewLobbyController(logger *slog.Logger, store lobbyStore, playerRepo playerRepo) *LobbyController {
	return &LobbyController{
		logger:     logger.With("component", "lobby"),
		store:      store,
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

// ListOpenSessions - handler gets the open sessions now and after every change until the returned func is called.
func (that *LobbyController) ListOpenSessions(ctx context.Context, handler func([]*entity.Session)) (func(), error) {
	unsubscribe, err := that.store.SubscribeOpenSessions(ctx, handler)
	if err != nil {
		return nil, fmt.Errorf("failed to watch open sessions: %w", err)
	}

	return unsubscribe, nil
}

// OpenSessions - a one-off snapshot of the lobby.
func (that *LobbyController) OpenSessions(ctx context.Context) ([]*entity.Session, error) {
	sessions, err := that.store.ListOpenSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}

	return sessions, nil
}

// CreateSession - opens a new waiting session hosted by host, who plays X.
func (that *LobbyController) CreateSession(ctx context.Context, host *entity.Player) (*entity.Session, error) {
	log := that.logger.With("method", "CreateSession", "hostID", host.ID)

	session := entity.NewSession(host, that.now())

	id, err := that.store.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.ID = id
	session.Revision = 1

	log.Info("session created", "sessionID", id)

	return session, nil
}

// JoinSession - takes the open seat of a waiting session as O and starts the game.
func (that *LobbyController) JoinSession(ctx context.Context, id string, guest *entity.Player) (*entity.Session, error) {
	log := that.logger.With("method", "JoinSession", "sessionID", id, "guestID", guest.ID)

	session, err := that.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !session.IsWaiting() {
		return nil, fmt.Errorf("%w: session %s is %s", apperror.ErrSessionNotJoinable, id, session.Status)
	}

	if session.HostID == guest.ID {
		return nil, apperror.ErrOwnSession
	}

	update := entity.NewJoinUpdate(guest)

	// conditional on what we just read, so two guests cannot both take the seat
	err = that.store.UpdateSessionIfRevision(ctx, id, session.Revision, update)
	if errors.Is(err, apperror.ErrStaleRevision) {
		return nil, fmt.Errorf("%w: session %s changed while joining", apperror.ErrSessionNotJoinable, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to join session: %w", err)
	}

	if err = update.ApplyTo(session); err != nil {
		return nil, fmt.Errorf("failed to apply join: %w", err)
	}
	session.Revision++

	log.Info("session joined")

	return session, nil
}

// CancelSession - the host withdraws a session nobody has joined yet.
func (that *LobbyController) CancelSession(ctx context.Context, id, hostID string) error {
	log := that.logger.With("method", "CancelSession", "sessionID", id)

	session, err := that.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if session.HostID != hostID || !session.IsWaiting() {
		return fmt.Errorf("%w: session %s cannot be cancelled", apperror.ErrSessionNotJoinable, id)
	}

	if err = that.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("session cancelled")

	return nil
}

// GetOrCreatePlayer - resolves the identity a connection plays under. An empty id creates a new player.
func (that *LobbyController) GetOrCreatePlayer(ctx context.Context, id, name string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx, uuid.NewString(), name)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return that.createPlayer(ctx, id, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if name != "" && name != player.Name {
		player.Name = name
		if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}
	}

	return player, nil
}

func (that *LobbyController) createPlayer(ctx context.Context, id, name string) (*entity.Player, error) {
	player := &entity.Player{
		ID:   id,
		Name: name,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}
