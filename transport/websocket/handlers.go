package websocket

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

const cleanupTimeout = 5 * time.Second

func (that *Server) handleConnect(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	var id, name string
	if payloadReq.Player != nil {
		id, name = payloadReq.Player.ID, payloadReq.Player.Name
	}

	player, err := that.lobby.GetOrCreatePlayer(ctx, id, name)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	client.setPlayer(player)

	if err = that.sendMessage(ctx, client, msg.Action, &Payload{Player: player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleLobbyWatch(ctx context.Context, client *client, _ *Message) error {
	if client.Player() == nil {
		return errNotConnected
	}

	unwatch, err := that.lobby.ListOpenSessions(ctx, func(sessions []*entity.Session) {
		that.push(ctx, client, actionLobbySessions, &Payload{Sessions: sessions})
	})
	if err != nil {
		return fmt.Errorf("failed to watch lobby: %w", err)
	}

	if !client.setLobbyWatch(unwatch) {
		unwatch()
	}

	return nil
}

func (that *Server) handleLobbyUnwatch(_ context.Context, client *client, _ *Message) error {
	client.stopLobbyWatch()

	return nil
}

func (that *Server) handleLobbyCreate(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleLobbyCreate")

	player := client.Player()
	if player == nil {
		return errNotConnected
	}

	session, err := that.lobby.CreateSession(ctx, player)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err = that.sendMessage(ctx, client, msg.Action, &Payload{Player: player, Game: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player hosts a session", "playerID", player.ID, "sessionID", session.ID)

	return that.enterGame(ctx, client, player, session.ID)
}

func (that *Server) handleLobbyJoin(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleLobbyJoin")

	player := client.Player()
	if player == nil {
		return errNotConnected
	}

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return fmt.Errorf("%w: game.id", errMissingPayload)
	}

	session, err := that.lobby.JoinSession(ctx, payloadReq.Game.ID, player)
	if err != nil {
		return fmt.Errorf("failed to join session: %w", err)
	}

	if err = that.sendMessage(ctx, client, msg.Action, &Payload{Player: player, Game: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("player joined a session", "playerID", player.ID, "sessionID", session.ID)

	return that.enterGame(ctx, client, player, session.ID)
}

func (that *Server) handleLobbyCancel(ctx context.Context, client *client, msg *Message) error {
	player := client.Player()
	if player == nil {
		return errNotConnected
	}

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	_, gameID := client.Game()
	if payloadReq.Game != nil && payloadReq.Game.ID != "" {
		gameID = payloadReq.Game.ID
	}

	if gameID == "" {
		return fmt.Errorf("%w: game.id", errMissingPayload)
	}

	if err = that.lobby.CancelSession(ctx, gameID, player.ID); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}

	if _, current := client.Game(); current == gameID {
		client.leaveGame()
	}

	return that.sendMessage(ctx, client, msg.Action, &Payload{Player: player})
}

func (that *Server) handleGameTurn(ctx context.Context, client *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Cell == nil {
		return fmt.Errorf("%w: cell", errMissingPayload)
	}

	game, _ := client.Game()
	if game == nil {
		return errNotInGame
	}

	// the new state reaches both players through game:state
	if err = game.HandleCellClick(ctx, *payloadReq.Cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, client *client, msg *Message) error {
	that.releaseGame(ctx, client)

	return that.sendMessage(ctx, client, msg.Action, &Payload{Player: client.Player()})
}

// enterGame - attaches the client to a session and streams its state to it.
func (that *Server) enterGame(ctx context.Context, client *client, player *entity.Player, sessionID string) error {
	game := that.newGame(sessionID, *player)

	game.OnStateChange(func(session *entity.Session) {
		that.push(ctx, client, actionGameState, &Payload{Game: session})
	})
	game.OnGameEnd(func(session *entity.Session) {
		that.push(ctx, client, actionGameEnd, &Payload{Game: session})
	})

	client.leaveGame()

	if err := game.Start(ctx); err != nil {
		game.Close()
		return fmt.Errorf("failed to start game: %w", err)
	}

	if previous := client.swapGame(game, sessionID); previous != nil {
		previous.Close()
	}

	return nil
}

// handleDisconnect - releases everything the connection held.
func (that *Server) handleDisconnect(client *client) {
	log := that.logger.With("method", "handleDisconnect")

	client.stopLobbyWatch()

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	that.releaseGame(ctx, client)

	player := client.Player()
	if player == nil {
		log.Info("anonymous client disconnected")
		return
	}

	log.Info("player disconnected", "playerID", player.ID)
}

// releaseGame - tears down the client's controller. A host leaving an unjoined session withdraws it.
func (that *Server) releaseGame(ctx context.Context, client *client) {
	log := that.logger.With("method", "releaseGame")

	player := client.Player()
	game, gameID := client.Game()

	var session *entity.Session
	if game != nil {
		session = game.Session()
	}

	client.leaveGame()

	if player == nil || session == nil || !session.IsWaiting() || session.HostID != player.ID {
		return
	}

	if err := that.lobby.CancelSession(ctx, gameID, player.ID); err != nil {
		log.Warn("failed to withdraw session", "sessionID", gameID, "error", err)
		return
	}

	log.Info("host left, session withdrawn", "sessionID", gameID)
}
