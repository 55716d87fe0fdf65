package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"nhooyr.io/websocket"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 30 * time.Second
	writeTimeout      = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type lobbyUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id, name string) (*entity.Player, error)
	ListOpenSessions(ctx context.Context, handler func([]*entity.Session)) (func(), error)
	CreateSession(ctx context.Context, host *entity.Player) (*entity.Session, error)
	JoinSession(ctx context.Context, id string, guest *entity.Player) (*entity.Session, error)
	CancelSession(ctx context.Context, id, hostID string) error
}

// GameSession - one participant's view of a running game.
type GameSession interface {
	Start(ctx context.Context) error
	HandleCellClick(ctx context.Context, cell int) error
	OnStateChange(listener func(*entity.Session))
	OnGameEnd(listener func(*entity.Session))
	Session() *entity.Session
	Close()
}

// GameFactory builds the game a connected player enters.
type GameFactory func(sessionID string, player entity.Player) GameSession

type handlerFunc func(ctx context.Context, client *client, message *Message) error

type Server struct {
	logger  *slog.Logger
	lobby   lobbyUseCase
	newGame GameFactory

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, lobby lobbyUseCase, newGame GameFactory) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		lobby:   lobby,
		newGame: newGame,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionLobbyWatch] = server.handleLobbyWatch
	server.handlers[actionLobbyUnwatch] = server.handleLobbyUnwatch
	server.handlers[actionLobbyCreate] = server.handleLobbyCreate
	server.handlers[actionLobbyJoin] = server.handleLobbyJoin
	server.handlers[actionLobbyCancel] = server.handleLobbyCancel
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	return mux
}

// Start - starts WebSocket server and blocks until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection - upgrades the request and serves messages until the client goes away.
func (that *Server) handleConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	client := newClient(conn)
	defer that.handleDisconnect(client)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(ctx, client); err != nil {
		log.Info("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := client.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(ctx, client, "", errMalformedMessage)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(ctx, client, message.Action, errUnknownAction)
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.sendError(ctx, client, message.Action, err)
		}
	}
}
