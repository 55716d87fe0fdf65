package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"github.com/rocketscienceinc/tictactoe-online/internal/repository"
	"github.com/rocketscienceinc/tictactoe-online/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-online/testing/suite"
)

const readTimeout = 3 * time.Second

// idlePeer - a peer link that never connects.
type idlePeer struct{}

func (idlePeer) Initialize(context.Context, bool) error   { return nil }
func (idlePeer) Send(context.Context, *entity.Move)       {}
func (idlePeer) SetOnMoveCallback(func(move *entity.Move)) {}
func (idlePeer) Destroy()                                  {}

type testEnv struct {
	url      string
	sessions repository.SessionRepository
}

func newTestEnv(t *testing.T) (context.Context, *testEnv) {
	t.Helper()

	ctx, st := suite.New(t)

	sessions := repository.NewSessionRepository(st.Logger, st.Storage)
	lobby := usecase.NewLobbyController(st.Logger, sessions, repository.NewPlayerRepository(st.Storage))

	newGame := func(sessionID string, player entity.Player) GameSession {
		return usecase.NewGameController(st.Logger, sessions, idlePeer{}, sessionID, player, false)
	}

	httpServer := httptest.NewServer(New(st.Logger, lobby, newGame).Handler())
	t.Cleanup(httpServer.Close)

	return ctx, &testEnv{
		url:      "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws",
		sessions: sessions,
	}
}

// testClient - a websocket client that keeps messages it was not yet asked for.
type testClient struct {
	conn    *websocket.Conn
	pending []Message
}

func (that *testEnv) dial(ctx context.Context, t *testing.T) *testClient {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, that.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	})

	return &testClient{conn: conn}
}

func (that *testClient) send(ctx context.Context, t *testing.T, action string, payload *Payload) {
	t.Helper()

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = data
	}

	require.NoError(t, wsjson.Write(ctx, that.conn, Message{Action: action, Payload: raw}))
}

// expect returns the first message with action for which accept holds, reading more when needed.
func (that *testClient) expect(ctx context.Context, t *testing.T, action string, accept func(*Payload) bool) *Payload {
	t.Helper()

	match := func(message Message) *Payload {
		if message.Action != action {
			return nil
		}

		var payload Payload
		require.NoError(t, json.Unmarshal(message.Payload, &payload))

		if accept == nil || accept(&payload) {
			return &payload
		}

		return nil
	}

	for i, message := range that.pending {
		if payload := match(message); payload != nil {
			that.pending = append(that.pending[:i], that.pending[i+1:]...)
			return payload
		}
	}

	readCtx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	for {
		var message Message
		if err := wsjson.Read(readCtx, that.conn, &message); err != nil {
			t.Fatalf("no %q message: %v", action, err)
		}

		if payload := match(message); payload != nil {
			return payload
		}

		that.pending = append(that.pending, message)
	}
}

func (that *testClient) connect(ctx context.Context, t *testing.T, name string) *entity.Player {
	t.Helper()

	that.send(ctx, t, actionConnect, &Payload{Player: &entity.Player{Name: name}})
	payload := that.expect(ctx, t, actionConnect, nil)
	require.NotNil(t, payload.Player)

	return payload.Player
}

func TestServer_Connect(t *testing.T) {
	t.Run("New player gets an id", func(t *testing.T) {
		ctx, env := newTestEnv(t)
		conn := env.dial(ctx, t)

		player := conn.connect(ctx, t, "Alice")

		assert.NotEmpty(t, player.ID)
		assert.Equal(t, "Alice", player.Name)
	})

	t.Run("Known player keeps the id", func(t *testing.T) {
		ctx, env := newTestEnv(t)

		first := env.dial(ctx, t).connect(ctx, t, "Alice")

		// When: the same player connects again on a new connection
		conn := env.dial(ctx, t)
		conn.send(ctx, t, actionConnect, &Payload{Player: &entity.Player{ID: first.ID}})
		payload := conn.expect(ctx, t, actionConnect, nil)

		// Then: it is recognised
		assert.Equal(t, first.ID, payload.Player.ID)
		assert.Equal(t, "Alice", payload.Player.Name)
	})
}

func TestServer_RejectsBadRequests(t *testing.T) {
	ctx, env := newTestEnv(t)
	conn := env.dial(ctx, t)

	t.Run("Malformed message", func(t *testing.T) {
		require.NoError(t, conn.conn.Write(ctx, websocket.MessageText, []byte("{not json")))

		payload := conn.expect(ctx, t, "", nil)

		assert.Equal(t, errMalformedMessage.Error(), payload.Error)
	})

	t.Run("Unknown action", func(t *testing.T) {
		conn.send(ctx, t, "game:cheat", nil)

		payload := conn.expect(ctx, t, "game:cheat", nil)

		assert.Equal(t, errUnknownAction.Error(), payload.Error)
	})

	t.Run("Action before connect", func(t *testing.T) {
		conn.send(ctx, t, actionLobbyCreate, nil)

		payload := conn.expect(ctx, t, actionLobbyCreate, nil)

		assert.Equal(t, errNotConnected.Error(), payload.Error)
	})

	t.Run("Turn outside a game", func(t *testing.T) {
		conn.connect(ctx, t, "Alice")
		cell := 0
		conn.send(ctx, t, actionGameTurn, &Payload{Cell: &cell})

		payload := conn.expect(ctx, t, actionGameTurn, nil)

		assert.Equal(t, errNotInGame.Error(), payload.Error)
	})

	t.Run("Join without a session id", func(t *testing.T) {
		conn.send(ctx, t, actionLobbyJoin, &Payload{})

		payload := conn.expect(ctx, t, actionLobbyJoin, nil)

		assert.Equal(t, errMissingPayload.Error(), payload.Error)
	})

	t.Run("Join an unknown session", func(t *testing.T) {
		conn.send(ctx, t, actionLobbyJoin, &Payload{Game: &entity.Session{ID: "missing"}})

		payload := conn.expect(ctx, t, actionLobbyJoin, nil)

		assert.Equal(t, apperror.ErrSessionNotFound.Error(), payload.Error)
	})
}

func TestServer_LobbyAndGame(t *testing.T) {
	ctx, env := newTestEnv(t)

	// Given: Bob watches the lobby
	alice := env.dial(ctx, t)
	bob := env.dial(ctx, t)
	alice.connect(ctx, t, "Alice")
	bobPlayer := bob.connect(ctx, t, "Bob")

	bob.send(ctx, t, actionLobbyWatch, nil)
	bob.expect(ctx, t, actionLobbySessions, func(p *Payload) bool { return len(p.Sessions) == 0 })

	// When: Alice opens a session
	alice.send(ctx, t, actionLobbyCreate, nil)
	created := alice.expect(ctx, t, actionLobbyCreate, nil)
	require.NotNil(t, created.Game)
	alice.expect(ctx, t, actionGameState, func(p *Payload) bool { return p.Game.IsWaiting() })

	// Then: Bob sees it in the lobby
	listed := bob.expect(ctx, t, actionLobbySessions, func(p *Payload) bool { return len(p.Sessions) == 1 })
	assert.Equal(t, created.Game.ID, listed.Sessions[0].ID)

	// When: Bob joins
	bob.send(ctx, t, actionLobbyJoin, &Payload{Game: &entity.Session{ID: created.Game.ID}})
	joined := bob.expect(ctx, t, actionLobbyJoin, nil)
	assert.Equal(t, bobPlayer.ID, joined.Game.GuestID)

	// Then: the lobby empties and both sides see the game start
	bob.expect(ctx, t, actionLobbySessions, func(p *Payload) bool { return len(p.Sessions) == 0 })
	alice.expect(ctx, t, actionGameState, func(p *Payload) bool { return p.Game.IsPlaying() })
	bob.expect(ctx, t, actionGameState, func(p *Payload) bool { return p.Game.IsPlaying() })

	// When: Bob tries to move out of turn
	cell := 4
	bob.send(ctx, t, actionGameTurn, &Payload{Cell: &cell})
	refused := bob.expect(ctx, t, actionGameTurn, nil)
	assert.Equal(t, apperror.ErrNotYourTurn.Error(), refused.Error)

	// When: the game is played out X0 O4 X1 O5 X2
	moves := []struct {
		client *testClient
		cell   int
		marker entity.Marker
	}{
		{alice, 0, entity.MarkerX},
		{bob, 4, entity.MarkerO},
		{alice, 1, entity.MarkerX},
		{bob, 5, entity.MarkerO},
		{alice, 2, entity.MarkerX},
	}

	for _, move := range moves {
		opponent := bob
		if move.client == bob {
			opponent = alice
		}

		cell := move.cell
		move.client.send(ctx, t, actionGameTurn, &Payload{Cell: &cell})
		opponent.expect(ctx, t, actionGameState, func(p *Payload) bool {
			return p.Game.Board[move.cell] == move.marker
		})
	}

	// Then: both players are told X won
	for _, client := range []*testClient{alice, bob} {
		ended := client.expect(ctx, t, actionGameEnd, nil)
		assert.Equal(t, entity.WinnerX, ended.Game.Winner)
	}

	stored, err := env.sessions.GetByID(ctx, created.Game.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFinished, stored.Status)
}

func TestServer_HostDisconnectWithdrawsSession(t *testing.T) {
	ctx, env := newTestEnv(t)

	// Given: a host with an unjoined session
	host := env.dial(ctx, t)
	host.connect(ctx, t, "Alice")
	host.send(ctx, t, actionLobbyCreate, nil)
	created := host.expect(ctx, t, actionLobbyCreate, nil)

	// When: the host goes away
	require.NoError(t, host.conn.Close(websocket.StatusNormalClosure, "bye"))

	// Then: the session disappears
	require.Eventually(t, func() bool {
		_, err := env.sessions.GetByID(ctx, created.Game.ID)
		return err != nil
	}, readTimeout, 20*time.Millisecond)

	open, err := env.sessions.ListOpenSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestServer_HostLeaveWithdrawsSession(t *testing.T) {
	ctx, env := newTestEnv(t)

	// Given: a host with an unjoined session
	host := env.dial(ctx, t)
	host.connect(ctx, t, "Alice")
	host.send(ctx, t, actionLobbyCreate, nil)
	created := host.expect(ctx, t, actionLobbyCreate, nil)

	// When: the host leaves the game but stays connected
	host.send(ctx, t, actionGameLeave, nil)
	reply := host.expect(ctx, t, actionGameLeave, nil)

	// Then: the session is no longer open
	assert.Empty(t, reply.Error)
	_, err := env.sessions.GetByID(ctx, created.Game.ID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)

	open, err := env.sessions.ListOpenSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestServer_CancelSession(t *testing.T) {
	ctx, env := newTestEnv(t)

	host := env.dial(ctx, t)
	host.connect(ctx, t, "Alice")
	host.send(ctx, t, actionLobbyCreate, nil)
	created := host.expect(ctx, t, actionLobbyCreate, nil)

	// When: the host cancels
	host.send(ctx, t, actionLobbyCancel, nil)
	reply := host.expect(ctx, t, actionLobbyCancel, nil)

	// Then: the session is gone
	assert.Empty(t, reply.Error)
	_, err := env.sessions.GetByID(ctx, created.Game.ID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
