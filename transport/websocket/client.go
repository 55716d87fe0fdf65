package websocket

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"nhooyr.io/websocket"
)

// client - per connection state.
type client struct {
	conn *websocket.Conn

	mu           sync.Mutex
	player       *entity.Player
	unwatchLobby func()
	game         GameSession
	gameID       string
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
	}
}

func (that *client) Player() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.player
}

func (that *client) setPlayer(player *entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.player = player
}

// setLobbyWatch keeps unwatch unless a watch is already running. It reports whether it was kept.
func (that *client) setLobbyWatch(unwatch func()) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.unwatchLobby != nil {
		return false
	}

	that.unwatchLobby = unwatch

	return true
}

func (that *client) stopLobbyWatch() {
	that.mu.Lock()
	unwatch := that.unwatchLobby
	that.unwatchLobby = nil
	that.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
}

func (that *client) Game() (GameSession, string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game, that.gameID
}

// swapGame installs game and returns the one it replaced.
func (that *client) swapGame(game GameSession, gameID string) GameSession {
	that.mu.Lock()
	defer that.mu.Unlock()

	previous := that.game
	that.game, that.gameID = game, gameID

	return previous
}

func (that *client) leaveGame() {
	if previous := that.swapGame(nil, ""); previous != nil {
		previous.Close()
	}
}
