package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type lobbyUseCase interface {
	OpenSessions(ctx context.Context) ([]*entity.Session, error)
}

type resultRepo interface {
	GetBySessionID(ctx context.Context, id string) (*entity.Session, error)
}

type Server struct {
	logger  *slog.Logger
	lobby   lobbyUseCase
	results resultRepo
}

// New - results may be nil when no archive is configured.
func New(logger *slog.Logger, lobby lobbyUseCase, results resultRepo) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		lobby:   lobby,
		results: results,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.HandleFunc("GET /sessions", that.openSessionsHandler)
	mux.HandleFunc("GET /results/{id}", that.resultHandler)

	return mux
}

// Start - starts HTTP server and blocks until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
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
