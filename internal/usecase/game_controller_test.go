package usecase

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-online/mocks/usecase"
)

const (
	hostID  = "host"
	guestID = "guest"
)

var moveTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// boardOf builds a board from a 9 character layout, '.' for empty.
func boardOf(layout string) entity.Board {
	var board entity.Board
	for i, r := range layout {
		switch r {
		case 'X':
			board[i] = entity.MarkerX
		case 'O':
			board[i] = entity.MarkerO
		}
	}

	return board
}

func playingSession(layout string, current entity.Marker) *entity.Session {
	return &entity.Session{
		ID:            "s1",
		HostID:        hostID,
		HostName:      "Alice",
		GuestID:       guestID,
		GuestName:     "Bob",
		Board:         boardOf(layout),
		CurrentPlayer: current,
		Status:        entity.StatusPlaying,
		Winner:        entity.WinnerNone,
		CreatedAt:     moveTime,
		LastMoveAt:    moveTime,
		Revision:      3,
	}
}

type controllerFixture struct {
	controller   *GameController
	store        *mockedUseCase.MockgameStore
	peer         *mockedUseCase.MockpeerTransport
	remote       func(*entity.Session)
	peerMove     func(*entity.Move)
	unsubscribes int
	mu           sync.Mutex
}

func (that *controllerFixture) unsubscribeCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.unsubscribes
}

// startController starts a controller for playerID on top of session with mocked collaborators.
func startController(t *testing.T, session *entity.Session, playerID string, guarded bool) *controllerFixture {
	t.Helper()

	fixture := &controllerFixture{
		store: mockedUseCase.NewMockgameStore(t),
		peer:  mockedUseCase.NewMockpeerTransport(t),
	}

	fixture.peer.EXPECT().
		SetOnMoveCallback(mock.Anything).
		Run(func(callback func(*entity.Move)) {
			fixture.peerMove = callback
		}).
		Return().
		Once()
	fixture.peer.EXPECT().
		Initialize(mock.Anything, mock.Anything).
		Return(nil).
		Maybe()
	fixture.peer.EXPECT().
		Destroy().
		Return().
		Maybe()

	fixture.store.EXPECT().
		SubscribeSession(mock.Anything, session.ID, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, handler func(*entity.Session)) (func(), error) {
			fixture.remote = handler
			return func() {
				fixture.mu.Lock()
				defer fixture.mu.Unlock()
				fixture.unsubscribes++
			}, nil
		}).
		Once()
	fixture.store.EXPECT().
		GetByID(mock.Anything, session.ID).
		Return(session.Clone(), nil).
		Once()

	fixture.controller = NewGameController(
		testLogger(), fixture.store, fixture.peer, session.ID, entity.Player{ID: playerID}, guarded,
	)
	fixture.controller.now = func() time.Time { return moveTime.Add(time.Minute) }

	require.NoError(t, fixture.controller.Start(context.Background()))

	return fixture
}

func TestGameController_Start(t *testing.T) {
	t.Run("Loads the session and derives the marker", func(t *testing.T) {
		// Given: a running game seen by the guest
		session := playingSession("X........", entity.MarkerO)

		// When: the guest controller starts
		fixture := startController(t, session, guestID, false)

		// Then: the local state is the stored one and the guest plays O
		assert.Equal(t, session, fixture.controller.Session())
		assert.Equal(t, entity.MarkerO, fixture.controller.Marker())
		assert.Equal(t, "s1", fixture.controller.SessionID())
	})

	t.Run("Host initiates the peer link", func(t *testing.T) {
		session := playingSession(".........", entity.MarkerX)

		store := mockedUseCase.NewMockgameStore(t)
		peer := mockedUseCase.NewMockpeerTransport(t)

		initiator := make(chan bool, 1)
		peer.EXPECT().SetOnMoveCallback(mock.Anything).Return().Once()
		peer.EXPECT().
			Initialize(mock.Anything, mock.Anything).
			Run(func(_ context.Context, asInitiator bool) {
				initiator <- asInitiator
			}).
			Return(nil).
			Once()
		store.EXPECT().SubscribeSession(mock.Anything, "s1", mock.Anything).Return(func() {}, nil).Once()
		store.EXPECT().GetByID(mock.Anything, "s1").Return(session, nil).Once()

		controller := NewGameController(testLogger(), store, peer, "s1", entity.Player{ID: hostID}, false)

		// When: the host starts
		require.NoError(t, controller.Start(context.Background()))

		// Then: its transport is brought up as the initiator
		select {
		case asInitiator := <-initiator:
			assert.True(t, asInitiator)
		case <-time.After(time.Second):
			t.Fatal("peer link was not initialized")
		}
	})

	t.Run("Fails when the session does not exist", func(t *testing.T) {
		store := mockedUseCase.NewMockgameStore(t)
		peer := mockedUseCase.NewMockpeerTransport(t)

		unsubscribed := false
		peer.EXPECT().SetOnMoveCallback(mock.Anything).Return().Once()
		store.EXPECT().
			SubscribeSession(mock.Anything, "missing", mock.Anything).
			Return(func() { unsubscribed = true }, nil).
			Once()
		store.EXPECT().
			GetByID(mock.Anything, "missing").
			Return(nil, apperror.ErrSessionNotFound).
			Once()

		controller := NewGameController(testLogger(), store, peer, "missing", entity.Player{ID: hostID}, false)

		// When: it starts
		err := controller.Start(context.Background())

		// Then: the error is returned and the subscription is released
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.True(t, unsubscribed)
	})

	t.Run("Cannot start twice", func(t *testing.T) {
		fixture := startController(t, playingSession(".........", entity.MarkerX), hostID, false)

		err := fixture.controller.Start(context.Background())

		require.ErrorIs(t, err, ErrAlreadyStarted)
	})

	t.Run("Already finished session fires game end", func(t *testing.T) {
		session := playingSession("XXXOO....", entity.MarkerO)
		session.Status = entity.StatusFinished
		session.Winner = entity.WinnerX

		store := mockedUseCase.NewMockgameStore(t)
		peer := mockedUseCase.NewMockpeerTransport(t)
		peer.EXPECT().SetOnMoveCallback(mock.Anything).Return().Once()
		store.EXPECT().SubscribeSession(mock.Anything, "s1", mock.Anything).Return(func() {}, nil).Once()
		store.EXPECT().GetByID(mock.Anything, "s1").Return(session, nil).Once()

		controller := NewGameController(testLogger(), store, peer, "s1", entity.Player{ID: guestID}, false)

		var ended []*entity.Session
		controller.OnGameEnd(func(s *entity.Session) {
			ended = append(ended, s)
		})

		// When: it starts on a finished session
		require.NoError(t, controller.Start(context.Background()))

		// Then: game end is reported straight away and no peer link is opened
		require.Len(t, ended, 1)
		assert.Equal(t, entity.WinnerX, ended[0].Winner)
		peer.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything)
	})
}

func TestGameController_HandleCellClick(t *testing.T) {
	ctx := context.Background()

	t.Run("Illegal clicks write nothing", func(t *testing.T) {
		tests := []struct {
			name     string
			session  *entity.Session
			playerID string
			cell     int
			err      error
		}{
			{
				name:     "not your turn",
				session:  playingSession(".........", entity.MarkerX),
				playerID: guestID,
				cell:     0,
				err:      apperror.ErrNotYourTurn,
			},
			{
				name:     "occupied cell",
				session:  playingSession("X...O....", entity.MarkerX),
				playerID: hostID,
				cell:     4,
				err:      apperror.ErrCellOccupied,
			},
			{
				name:     "out of range",
				session:  playingSession(".........", entity.MarkerX),
				playerID: hostID,
				cell:     9,
				err:      apperror.ErrInvalidCell,
			},
			{
				name: "waiting for a guest",
				session: func() *entity.Session {
					s := playingSession(".........", entity.MarkerX)
					s.Status = entity.StatusWaiting
					s.GuestID = ""
					return s
				}(),
				playerID: hostID,
				cell:     0,
				err:      apperror.ErrGameIsNotStarted,
			},
			{
				name: "game finished",
				session: func() *entity.Session {
					s := playingSession("XXXOO....", entity.MarkerO)
					s.Status = entity.StatusFinished
					s.Winner = entity.WinnerX
					return s
				}(),
				playerID: guestID,
				cell:     8,
				err:      apperror.ErrGameFinished,
			},
			{
				name:     "spectator",
				session:  playingSession(".........", entity.MarkerX),
				playerID: "someone-else",
				cell:     0,
				err:      apperror.ErrNotYourTurn,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given: a controller whose store expects no writes
				fixture := startController(t, tt.session, tt.playerID, false)

				// When: the illegal cell is clicked
				err := fixture.controller.HandleCellClick(ctx, tt.cell)

				// Then: the click is refused and the local state is untouched
				require.ErrorIs(t, err, tt.err)
				assert.Equal(t, tt.session, fixture.controller.Session())
			})
		}
	})

	t.Run("Click before start is refused", func(t *testing.T) {
		controller := NewGameController(
			testLogger(), mockedUseCase.NewMockgameStore(t), mockedUseCase.NewMockpeerTransport(t),
			"s1", entity.Player{ID: hostID}, false,
		)

		err := controller.HandleCellClick(ctx, 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Legal move advances the turn with one write", func(t *testing.T) {
		// Given: X to move on an open board
		fixture := startController(t, playingSession("....O....", entity.MarkerX), hostID, false)

		fixture.store.EXPECT().
			UpdateSession(mock.Anything, "s1", mock.MatchedBy(func(update *entity.SessionUpdate) bool {
				return update.Board != nil && update.Board[0] == entity.MarkerX &&
					update.CurrentPlayer != nil && *update.CurrentPlayer == entity.MarkerO &&
					update.Status == nil && update.Winner == nil && update.LastMoveAt != nil
			})).
			Return(nil).
			Once()
		fixture.peer.EXPECT().
			Send(mock.Anything, mock.MatchedBy(func(move *entity.Move) bool {
				return move.Position == 0 && move.Player == entity.MarkerX
			})).
			Return().
			Once()

		var states []*entity.Session
		fixture.controller.OnStateChange(func(s *entity.Session) {
			states = append(states, s)
		})

		// When: the host plays cell 0
		require.NoError(t, fixture.controller.HandleCellClick(ctx, 0))

		// Then: the local state moved optimistically and O is next
		local := fixture.controller.Session()
		assert.Equal(t, entity.MarkerX, local.Board[0])
		assert.Equal(t, entity.MarkerO, local.CurrentPlayer)
		assert.Equal(t, entity.StatusPlaying, local.Status)
		require.Len(t, states, 1)
		assert.Equal(t, local, states[0])
	})

	t.Run("Winning move writes the finished state once", func(t *testing.T) {
		// Given: X can complete the top row
		fixture := startController(t, playingSession("XX.OO....", entity.MarkerX), hostID, false)

		fixture.store.EXPECT().
			UpdateSession(mock.Anything, "s1", mock.MatchedBy(func(update *entity.SessionUpdate) bool {
				return update.Board != nil && update.Board[2] == entity.MarkerX &&
					update.Status != nil && *update.Status == entity.StatusFinished &&
					update.Winner != nil && *update.Winner == entity.WinnerX &&
					update.LastMoveAt != nil
			})).
			Return(nil).
			Once()
		fixture.peer.EXPECT().Send(mock.Anything, mock.Anything).Return().Once()

		ends := 0
		fixture.controller.OnGameEnd(func(s *entity.Session) {
			ends++
			assert.Equal(t, entity.WinnerX, s.Winner)
		})

		// When: the host plays the winning cell
		require.NoError(t, fixture.controller.HandleCellClick(ctx, 2))

		// Then: the game ends once, even when the store echoes the result back
		finished := fixture.controller.Session()
		finished.Revision++
		fixture.remote(finished)

		assert.Equal(t, 1, ends)
		assert.Equal(t, entity.StatusFinished, fixture.controller.Session().Status)

		// Then: nothing more can be played
		err := fixture.controller.HandleCellClick(ctx, 8)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Last cell without a line is a draw", func(t *testing.T) {
		fixture := startController(t, playingSession("XOXXOOOX.", entity.MarkerX), hostID, false)

		fixture.store.EXPECT().
			UpdateSession(mock.Anything, "s1", mock.MatchedBy(func(update *entity.SessionUpdate) bool {
				return update.Winner != nil && *update.Winner == entity.WinnerDraw
			})).
			Return(nil).
			Once()
		fixture.peer.EXPECT().Send(mock.Anything, mock.Anything).Return().Once()

		require.NoError(t, fixture.controller.HandleCellClick(ctx, 8))

		assert.Equal(t, entity.WinnerDraw, fixture.controller.Session().Winner)
	})

	t.Run("Failed write is reported and nothing is sent", func(t *testing.T) {
		stored := playingSession(".........", entity.MarkerX)
		fixture := startController(t, stored, hostID, false)

		fixture.store.EXPECT().
			UpdateSession(mock.Anything, "s1", mock.Anything).
			Return(apperror.ErrStoreWrite).
			Once()
		fixture.store.EXPECT().
			GetByID(mock.Anything, "s1").
			Return(stored.Clone(), nil).
			Once()

		// When: the store rejects the move
		err := fixture.controller.HandleCellClick(ctx, 4)

		// Then: the error surfaces and the local state is the store's again
		require.ErrorIs(t, err, apperror.ErrStoreWrite)
		assert.Equal(t, stored, fixture.controller.Session())
		fixture.peer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

		// When: the same cell is tried again and the store accepts it
		fixture.store.EXPECT().
			UpdateSession(mock.Anything, "s1", mock.Anything).
			Return(nil).
			Once()
		fixture.peer.EXPECT().Send(mock.Anything, mock.Anything).Return().Once()

		// Then: the move goes through
		require.NoError(t, fixture.controller.HandleCellClick(ctx, 4))
		assert.Equal(t, entity.MarkerX, fixture.controller.Session().Board[4])
		assert.Equal(t, entity.MarkerO, fixture.controller.Session().CurrentPlayer)
	})

	t.Run("Failed write rolls back when the store cannot be read either", func(t *testing.T) {
		// Given: X is one cell away from winning
		stored := playingSession("XX.OO....", entity.MarkerX)
		fixture := startController(t, stored, hostID, false)

		ends := 0
		fixture.controller.OnGameEnd(func(*entity.Session) { ends++ })

		fixture.store.EXPECT().
			UpdateSession(mock.Anything, "s1", mock.Anything).
			Return(apperror.ErrStoreWrite).
			Once()
		fixture.store.EXPECT().
			GetByID(mock.Anything, "s1").
			Return(nil, errRedisDown).
			Once()

		// When: the winning move cannot be written
		err := fixture.controller.HandleCellClick(ctx, 2)

		// Then: the local state is back to before the click and the game has not ended
		require.ErrorIs(t, err, apperror.ErrStoreWrite)
		assert.Equal(t, stored, fixture.controller.Session())
		assert.Zero(t, ends)
	})

	t.Run("Guarded write losing a race resyncs from the store", func(t *testing.T) {
		// Given: a guarded controller at revision 3
		fixture := startController(t, playingSession(".........", entity.MarkerX), hostID, true)

		fresh := playingSession("...X.O...", entity.MarkerX)
		fresh.Revision = 5

		fixture.store.EXPECT().
			UpdateSessionIfRevision(mock.Anything, "s1", int64(3), mock.Anything).
			Return(apperror.ErrStaleRevision).
			Once()
		fixture.store.EXPECT().
			GetByID(mock.Anything, "s1").
			Return(fresh, nil).
			Once()

		// When: the move hits a stale revision
		err := fixture.controller.HandleCellClick(ctx, 0)

		// Then: the error surfaces and the local state is the store's
		require.ErrorIs(t, err, apperror.ErrStaleRevision)
		assert.Equal(t, fresh, fixture.controller.Session())
	})
}

func TestGameController_RemoteUpdates(t *testing.T) {
	t.Run("Store notification overwrites the local state", func(t *testing.T) {
		fixture := startController(t, playingSession(".........", entity.MarkerX), guestID, false)

		var states []*entity.Session
		fixture.controller.OnStateChange(func(s *entity.Session) {
			states = append(states, s)
		})

		// When: the host's move arrives from the store
		remote := playingSession("X........", entity.MarkerO)
		remote.Revision = 4
		fixture.remote(remote)

		// Then: the guest sees it and may now play
		assert.Equal(t, remote, fixture.controller.Session())
		require.Len(t, states, 1)
		assert.Equal(t, entity.MarkerX, states[0].Board[0])
	})

	t.Run("Peer move is applied as a hint", func(t *testing.T) {
		fixture := startController(t, playingSession("X........", entity.MarkerO), hostID, false)

		// When: the guest's move arrives over the peer link
		fixture.peerMove(&entity.Move{Position: 4, Player: entity.MarkerO, Timestamp: moveTime})

		// Then: the board shows it and it is X's turn again
		local := fixture.controller.Session()
		assert.Equal(t, entity.MarkerO, local.Board[4])
		assert.Equal(t, entity.MarkerX, local.CurrentPlayer)
		assert.Equal(t, int64(3), local.Revision)
	})

	t.Run("Peer moves that do not fit are ignored", func(t *testing.T) {
		session := playingSession("X........", entity.MarkerO)
		fixture := startController(t, session, hostID, false)

		// own marker, then an occupied cell
		fixture.peerMove(&entity.Move{Position: 5, Player: entity.MarkerX, Timestamp: moveTime})
		fixture.peerMove(&entity.Move{Position: 0, Player: entity.MarkerO, Timestamp: moveTime})

		assert.Equal(t, session, fixture.controller.Session())
	})

	t.Run("Winning peer move leaves the result to the store", func(t *testing.T) {
		fixture := startController(t, playingSession("XX.OO.X..", entity.MarkerO), hostID, false)

		fixture.peerMove(&entity.Move{Position: 5, Player: entity.MarkerO, Timestamp: moveTime})

		local := fixture.controller.Session()
		assert.Equal(t, entity.MarkerO, local.Board[5])
		assert.Equal(t, entity.StatusPlaying, local.Status)
	})
}

func TestGameController_Close(t *testing.T) {
	// Given: a started controller
	fixture := startController(t, playingSession(".........", entity.MarkerX), hostID, false)

	// When: it is closed twice
	fixture.controller.Close()
	fixture.controller.Close()

	// Then: it unsubscribes once and tears the link down once
	assert.Equal(t, 1, fixture.unsubscribeCount())
	fixture.peer.AssertNumberOfCalls(t, "Destroy", 1)
}
