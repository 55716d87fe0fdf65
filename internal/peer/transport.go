package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-online/internal/config"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	peerPath    = "/peer"
	tokenHeader = "X-Peer-Token"

	initialDialInterval = 100 * time.Millisecond
	writeTimeout        = 5 * time.Second
	closeTimeout        = 5 * time.Second
	readHeaderTimeout   = 10 * time.Second
)

var (
	ErrDestroyed          = errors.New("peer transport destroyed")
	ErrAlreadyInitialized = errors.New("peer transport already initialized")
	ErrAlreadyConnected   = errors.New("peer already connected")
	ErrRejected           = errors.New("peer rejected the connection")
)

type signaler interface {
	PublishSignal(ctx context.Context, sessionID string, signal *entity.Signal) error
	AwaitSignal(ctx context.Context, sessionID string, role entity.PeerRole) (*entity.Signal, error)
}

// Transport - a best-effort direct link between the two participants of one session.
// The initiator listens and publishes where to reach it, the responder dials in.
type Transport struct {
	logger    *slog.Logger
	conf      config.Peer
	signaler  signaler
	sessionID string

	mu       sync.Mutex
	conn     *websocket.Conn
	readDone chan struct{}
	server   *http.Server
	onMove   func(move *entity.Move)

	connected     chan struct{}
	connectedOnce sync.Once
	initialized   atomic.Bool

	rootCtx    context.Context
	rootCancel context.CancelFunc
	stopOnce   sync.Once
}

func New(logger *slog.Logger, conf config.Peer, signaler signaler, sessionID string) *Transport {
	rootCtx, rootCancel := context.WithCancel(context.Background())

	return &Transport{
		logger:    logger.With("component", "peer", "sessionID", sessionID),
		conf:      conf,
		signaler:  signaler,
		sessionID: sessionID,

		connected: make(chan struct{}),

		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}
}

// Initialize - sets up the link. It returns once the peer is connected, ctx ends, or the transport is destroyed.
func (that *Transport) Initialize(ctx context.Context, asInitiator bool) error {
	if that.rootCtx.Err() != nil {
		return ErrDestroyed
	}

	if !that.initialized.CompareAndSwap(false, true) {
		return ErrAlreadyInitialized
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := context.AfterFunc(that.rootCtx, cancel)
	defer stop()

	if asInitiator {
		return that.listen(ctx)
	}

	return that.dial(ctx)
}

func (that *Transport) SetOnMoveCallback(callback func(move *entity.Move)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onMove = callback
}

func (that *Transport) Connected() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn != nil
}

// Send - relays move to the peer. Failures are logged and never returned.
func (that *Transport) Send(ctx context.Context, move *entity.Move) {
	log := that.logger.With("method", "Send")

	that.mu.Lock()
	conn := that.conn
	that.mu.Unlock()

	if conn == nil {
		log.Warn("peer not connected, move not sent", "position", move.Position)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := wsjson.Write(writeCtx, conn, move); err != nil {
		log.Warn("failed to send move", "position", move.Position, "error", err)
	}
}

// Destroy - closes the link and the listener. Safe to call more than once.
func (that *Transport) Destroy() {
	that.stopOnce.Do(func() {
		that.mu.Lock()
		conn, server, readDone := that.conn, that.server, that.readDone
		that.conn = nil
		that.mu.Unlock()

		if conn != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "session closed")
		}

		that.rootCancel()

		if server != nil {
			_ = server.Close()
		}

		if readDone != nil {
			select {
			case <-readDone:
			case <-time.After(closeTimeout):
				that.logger.Warn("peer reader did not stop in time")
			}
		}
	})
}

func (that *Transport) listen(ctx context.Context) error {
	log := that.logger.With("method", "listen")

	listener, err := net.Listen("tcp", that.conf.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen for peer: %w", err)
	}

	token := uuid.NewString()

	mux := http.NewServeMux()
	mux.HandleFunc(peerPath, that.acceptHandler(token))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	that.mu.Lock()
	if that.rootCtx.Err() != nil {
		that.mu.Unlock()
		_ = listener.Close()
		return ErrDestroyed
	}
	that.server = server
	that.mu.Unlock()

	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Error("peer listener stopped", "error", serveErr)
		}
	}()

	offer := &entity.Signal{
		Role:  entity.RoleInitiator,
		URL:   that.advertiseURL(listener.Addr()),
		Token: token,
	}

	log.Info("peer signal", "role", offer.Role, "url", offer.URL)

	if err = that.signaler.PublishSignal(ctx, that.sessionID, offer); err != nil {
		return fmt.Errorf("failed to publish peer offer: %w", err)
	}

	select {
	case <-that.connected:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("peer did not connect: %w", ctx.Err())
	}
}

func (that *Transport) acceptHandler(token string) http.HandlerFunc {
	log := that.logger.With("method", "accept")

	return func(writer http.ResponseWriter, req *http.Request) {
		if req.Header.Get(tokenHeader) != token {
			log.Warn("rejected peer with a wrong token", "remote", req.RemoteAddr)
			http.Error(writer, "invalid peer token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(writer, req, nil)
		if err != nil {
			log.Error("failed to accept peer", "error", err)
			return
		}

		readDone, err := that.attach(conn)
		if err != nil {
			_ = conn.Close(websocket.StatusPolicyViolation, err.Error())
			return
		}

		log.Info("peer connected", "remote", req.RemoteAddr)

		that.readLoop(conn, readDone)
	}
}

func (that *Transport) dial(ctx context.Context) error {
	log := that.logger.With("method", "dial")

	offer, err := that.signaler.AwaitSignal(ctx, that.sessionID, entity.RoleInitiator)
	if err != nil {
		return fmt.Errorf("failed to receive peer offer: %w", err)
	}

	log.Info("peer signal", "role", offer.Role, "url", offer.URL)

	header := http.Header{}
	header.Set(tokenHeader, offer.Token)

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = initialDialInterval

	operation := func() (*websocket.Conn, error) {
		attemptCtx, cancel := context.WithTimeout(that.rootCtx, that.conf.DialTimeout)
		defer cancel()

		conn, resp, dialErr := websocket.Dial(attemptCtx, offer.URL, &websocket.DialOptions{HTTPHeader: header})
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, backoff.Permanent(ErrRejected)
		}

		return conn, dialErr
	}

	conn, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(that.conf.DialTimeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Debug("retrying peer dial", "error", err, "next", next)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to dial peer: %w", err)
	}

	readDone, err := that.attach(conn)
	if err != nil {
		_ = conn.Close(websocket.StatusPolicyViolation, err.Error())
		return err
	}

	log.Info("peer connected", "url", offer.URL)

	go that.readLoop(conn, readDone)

	return nil
}

// attach makes conn the one live link. Only the first connection is kept.
func (that *Transport) attach(conn *websocket.Conn) (chan struct{}, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.rootCtx.Err() != nil {
		return nil, ErrDestroyed
	}

	if that.conn != nil || that.readDone != nil {
		return nil, ErrAlreadyConnected
	}

	that.conn = conn
	that.readDone = make(chan struct{})
	that.connectedOnce.Do(func() {
		close(that.connected)
	})

	return that.readDone, nil
}

func (that *Transport) readLoop(conn *websocket.Conn, readDone chan struct{}) {
	log := that.logger.With("method", "readLoop")

	defer close(readDone)

	for {
		messageType, data, err := conn.Read(that.rootCtx)
		if err != nil {
			if that.rootCtx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				log.Info("peer link closed")
			} else {
				log.Warn("peer link lost", "error", err)
			}

			// the link is not re-established; the store keeps the game going
			that.mu.Lock()
			if that.conn == conn {
				that.conn = nil
			}
			that.mu.Unlock()

			return
		}

		if messageType != websocket.MessageText {
			log.Warn("discarding non-text peer message")
			continue
		}

		move, err := decodeMove(data)
		if err != nil {
			log.Warn("discarding malformed peer message", "error", err)
			continue
		}

		that.mu.Lock()
		callback := that.onMove
		that.mu.Unlock()

		if callback != nil {
			callback(move)
		}
	}
}

func (that *Transport) advertiseURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		host, port = addr.String(), ""
	}

	if that.conf.AdvertiseHost != "" {
		host = that.conf.AdvertiseHost
	}

	return (&url.URL{Scheme: "ws", Host: net.JoinHostPort(host, port), Path: peerPath}).String()
}

func decodeMove(data []byte) (*entity.Move, error) {
	var move entity.Move
	if err := json.Unmarshal(data, &move); err != nil {
		return nil, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	if err := move.Validate(); err != nil {
		return nil, err
	}

	return &move, nil
}
