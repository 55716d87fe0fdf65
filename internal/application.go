package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-online/internal/config"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"github.com/rocketscienceinc/tictactoe-online/internal/peer"
	"github.com/rocketscienceinc/tictactoe-online/internal/repository"
	"github.com/rocketscienceinc/tictactoe-online/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-online/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-online/transport/rest"
	"github.com/rocketscienceinc/tictactoe-online/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sessionRepo := repository.NewSessionRepository(logger, redisStorage)
	playerRepo := repository.NewPlayerRepository(redisStorage)
	signalRepo := repository.NewSignalRepository(redisStorage, conf.Peer.SignalTTL)

	var (
		resultRepo repository.ResultRepository
		archiver   *usecase.Archiver
	)

	if conf.Postgres.Enabled() {
		postgresStorage, pgErr := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if pgErr != nil {
			return fmt.Errorf("could not connect to postgres storage: %w", pgErr)
		}

		defer func() {
			if closeErr := postgresStorage.Close(); closeErr != nil {
				log.Error("could not close postgres storage", "error", closeErr)
			}
		}()

		if err = postgresStorage.Init(ctx); err != nil {
			return fmt.Errorf("could not init postgres storage: %w", err)
		}

		resultRepo = repository.NewResultRepository(postgresStorage.Connection)
		archiver = usecase.NewArchiver(logger, resultRepo)

		log.Info("results archive enabled")
	}

	lobby := usecase.NewLobbyController(logger, sessionRepo, playerRepo)

	newGame := func(sessionID string, player entity.Player) websocket.GameSession {
		transport := peer.New(logger, conf.Peer, signalRepo, sessionID)
		controller := usecase.NewGameController(logger, sessionRepo, transport, sessionID, player, conf.Game.GuardedUpdates)

		if archiver != nil {
			controller.OnGameEnd(archiver.Record)
		}

		return controller
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, lobby, resultRepo)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, lobby, newGame)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
