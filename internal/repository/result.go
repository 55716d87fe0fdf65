package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

var ErrSessionNotFinished = errors.New("session is not finished")

// ResultRepository - archive of finished games.
type ResultRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	GetBySessionID(ctx context.Context, id string) (*entity.Session, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

// Save - records a finished session once. Both participants report the same end, the second report is a no-op.
func (that *resultRepository) Save(ctx context.Context, session *entity.Session) error {
	if !session.IsFinished() {
		return fmt.Errorf("%w: %s is %s", ErrSessionNotFinished, session.ID, session.Status)
	}

	board, err := json.Marshal(session.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	query := `INSERT INTO game_results (
		session_id, host_id, host_name, guest_id, guest_name, winner, board, started_at, finished_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (session_id) DO NOTHING`

	_, err = that.conn.ExecContext(ctx, query,
		session.ID,
		session.HostID,
		session.HostName,
		session.GuestID,
		session.GuestName,
		string(session.Winner),
		string(board),
		session.CreatedAt,
		session.LastMoveAt,
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) GetBySessionID(ctx context.Context, id string) (*entity.Session, error) {
	query := `SELECT session_id, host_id, host_name, guest_id, guest_name, winner, board, started_at, finished_at
		FROM game_results WHERE session_id = $1`

	var (
		session entity.Session
		winner  string
		board   []byte
	)

	err := that.conn.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.HostID,
		&session.HostName,
		&session.GuestID,
		&session.GuestName,
		&winner,
		&board,
		&session.CreatedAt,
		&session.LastMoveAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	if err = json.Unmarshal(board, &session.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	session.Winner = entity.Winner(winner)
	session.Status = entity.StatusFinished

	return &session, nil
}
