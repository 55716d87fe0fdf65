package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"github.com/rocketscienceinc/tictactoe-online/internal/tictactoe"
)

var ErrAlreadyStarted = errors.New("game controller already started")

type gameStore interface {
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSession(ctx context.Context, id string, update *entity.SessionUpdate) error
	UpdateSessionIfRevision(ctx context.Context, id string, revision int64, update *entity.SessionUpdate) error
	SubscribeSession(ctx context.Context, id string, handler func(*entity.Session)) (func(), error)
}

type peerTransport interface {
	Initialize(ctx context.Context, asInitiator bool) error
	Send(ctx context.Context, move *entity.Move)
	SetOnMoveCallback(callback func(move *entity.Move))
	Destroy()
}

// GameController - drives one session for one participant.
// The store is authoritative; the local copy is a cache that every store notification overwrites.
type GameController struct {
	logger    *slog.Logger
	store     gameStore
	peer      peerTransport
	sessionID string
	player    entity.Player
	guarded   bool
	now       func() time.Time

	mu          sync.Mutex
	session     *entity.Session
	marker      entity.Marker
	started     bool
	ended       bool
	unsubscribe func()
	onState     []func(*entity.Session)
	onEnd       []func(*entity.Session)

	closeOnce sync.Once
}

// NewGameController - guarded makes every move write conditional on the revision the player last saw.
func NewGameController(
	logger *slog.Logger,
	store gameStore,
	peer peerTransport,
	sessionID string,
	player entity.Player,
	guarded bool,
) *GameController {
	return &GameController{
		logger:    logger.With("component", "gameController", "sessionID", sessionID, "playerID", player.ID),
		store:     store,
		peer:      peer,
		sessionID: sessionID,
		player:    player,
		guarded:   guarded,
		now:       time.Now,
	}
}

// OnStateChange registers a listener for every new local state. Register before Start.
func (that *GameController) OnStateChange(listener func(*entity.Session)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onState = append(that.onState, listener)
}

// OnGameEnd registers a listener called once when the session is seen finished.
func (that *GameController) OnGameEnd(listener func(*entity.Session)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onEnd = append(that.onEnd, listener)
}

func (that *GameController) SessionID() string {
	return that.sessionID
}

// Session - a copy of the local state.
func (that *GameController) Session() *entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.Clone()
}

func (that *GameController) Marker() entity.Marker {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.marker
}

// Start - subscribes to the session, loads it, and brings up the peer link in the background.
func (that *GameController) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	that.mu.Lock()
	if that.started {
		that.mu.Unlock()
		return ErrAlreadyStarted
	}
	that.started = true
	that.mu.Unlock()

	that.peer.SetOnMoveCallback(that.handlePeerMove)

	// subscribe first so nothing written after the load is missed
	unsubscribe, err := that.store.SubscribeSession(ctx, that.sessionID, that.handleRemoteUpdate)
	if err != nil {
		return fmt.Errorf("failed to subscribe to session: %w", err)
	}

	session, err := that.store.GetByID(ctx, that.sessionID)
	if err != nil {
		unsubscribe()
		return fmt.Errorf("failed to load session: %w", err)
	}

	that.mu.Lock()
	that.unsubscribe = unsubscribe
	if that.session == nil || session.Revision >= that.session.Revision {
		that.session = session
	}
	that.marker = that.session.MarkerFor(that.player.ID)
	current := that.session.Clone()
	marker := that.marker
	that.mu.Unlock()

	if marker.IsValid() && !current.IsFinished() {
		go func() {
			// the host offers the link, the guest answers
			if err := that.peer.Initialize(ctx, marker == entity.MarkerX); err != nil {
				log.Warn("peer link not established", "error", err)
			}
		}()
	}

	log.Info("game controller started", "marker", marker, "status", current.Status)

	that.emitState(current)
	if current.IsFinished() {
		that.fireGameEnd(current)
	}

	return nil
}

// HandleCellClick - plays cell for the local participant. Illegal clicks return an error and write nothing.
func (that *GameController) HandleCellClick(ctx context.Context, cell int) error {
	log := that.logger.With("method", "HandleCellClick", "cell", cell)

	that.mu.Lock()
	if that.session == nil {
		that.mu.Unlock()
		return apperror.ErrGameIsNotStarted
	}

	working := that.session.Clone()
	revision := that.session.Revision
	marker := that.marker

	update, err := tictactoe.MakeTurn(working, marker, cell, that.now())
	if err != nil {
		that.mu.Unlock()
		log.Debug("click ignored", "error", err)
		return err
	}

	// optimistic: the local copy moves before the store confirms
	previous := that.session
	that.session = working
	snapshot := working.Clone()
	that.mu.Unlock()

	that.emitState(snapshot)

	if err = that.write(ctx, revision, update); err != nil {
		if errors.Is(err, apperror.ErrStaleRevision) {
			log.Warn("move lost to a concurrent write, resyncing")
		} else {
			log.Error("failed to write move", "error", err)
		}

		that.rollback(working, previous)
		that.resync(ctx)

		return fmt.Errorf("failed to update session: %w", err)
	}

	that.peer.Send(ctx, &entity.Move{Position: cell, Player: marker, Timestamp: *update.LastMoveAt})

	if snapshot.IsFinished() {
		log.Info("game finished", "winner", snapshot.Winner)
		that.fireGameEnd(snapshot)
	}

	return nil
}

// Close - stops listening to the store and tears the peer link down. Safe to call more than once.
func (that *GameController) Close() {
	that.closeOnce.Do(func() {
		that.mu.Lock()
		unsubscribe := that.unsubscribe
		that.unsubscribe = nil
		that.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}

		that.peer.Destroy()
	})
}

func (that *GameController) write(ctx context.Context, revision int64, update *entity.SessionUpdate) error {
	if that.guarded {
		return that.store.UpdateSessionIfRevision(ctx, that.sessionID, revision, update)
	}

	return that.store.UpdateSession(ctx, that.sessionID, update)
}

// rollback drops an unwritten move, unless a store notification already replaced it.
func (that *GameController) rollback(unwritten, previous *entity.Session) {
	that.mu.Lock()
	if that.session != unwritten {
		that.mu.Unlock()
		return
	}
	that.session = previous
	restored := previous.Clone()
	that.mu.Unlock()

	that.emitState(restored)
}

func (that *GameController) resync(ctx context.Context) {
	log := that.logger.With("method", "resync")

	session, err := that.store.GetByID(ctx, that.sessionID)
	if err != nil {
		log.Error("failed to reload session", "error", err)
		return
	}

	that.handleRemoteUpdate(session)
}

// handleRemoteUpdate - the store's view always replaces the local one.
func (that *GameController) handleRemoteUpdate(session *entity.Session) {
	that.mu.Lock()
	that.session = session.Clone()
	if !that.marker.IsValid() {
		that.marker = session.MarkerFor(that.player.ID)
	}
	that.mu.Unlock()

	that.emitState(session.Clone())

	if session.IsFinished() {
		that.fireGameEnd(session.Clone())
	}
}

// handlePeerMove - applies the opponent's move to the local copy only, as an early hint.
func (that *GameController) handlePeerMove(move *entity.Move) {
	log := that.logger.With("method", "handlePeerMove", "position", move.Position)

	that.mu.Lock()
	session := that.session
	if session == nil || !session.IsPlaying() || move.Player == that.marker ||
		move.Player != session.CurrentPlayer || !session.Board.IsCellEmpty(move.Position) {
		that.mu.Unlock()
		log.Debug("peer move does not fit the local state, ignored")
		return
	}

	hint := session.Clone()
	hint.Board[move.Position] = move.Player
	// a finishing move waits for the store to announce the result
	if tictactoe.CheckWinner(hint.Board) == entity.WinnerNone {
		hint.CurrentPlayer = tictactoe.NextMarker(move.Player)
	}
	that.session = hint
	that.mu.Unlock()

	that.emitState(hint.Clone())
}

func (that *GameController) emitState(session *entity.Session) {
	that.mu.Lock()
	listeners := slices.Clone(that.onState)
	that.mu.Unlock()

	for _, listener := range listeners {
		listener(session)
	}
}

func (that *GameController) fireGameEnd(session *entity.Session) {
	that.mu.Lock()
	if that.ended {
		that.mu.Unlock()
		return
	}
	that.ended = true
	listeners := slices.Clone(that.onEnd)
	that.mu.Unlock()

	for _, listener := range listeners {
		listener(session)
	}
}
