package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// register the postgres driver with database/sql.
	_ "github.com/lib/pq"
)

const (
	maxOpenConns    = 8
	maxIdleConns    = 4
	connMaxLifetime = 30 * time.Minute
)

type PostgresStorage struct {
	Connection *sql.DB
}

func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &PostgresStorage{Connection: conn}, nil
}

// Init - creates the results table if it does not exist yet.
func (that *PostgresStorage) Init(ctx context.Context) error {
	return InitSchema(ctx, that.Connection)
}

func (that *PostgresStorage) Close() error {
	return that.Connection.Close()
}

func InitSchema(ctx context.Context, conn *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS game_results (
		session_id  TEXT PRIMARY KEY,
		host_id     TEXT NOT NULL,
		host_name   TEXT NOT NULL DEFAULT '',
		guest_id    TEXT NOT NULL DEFAULT '',
		guest_name  TEXT NOT NULL DEFAULT '',
		winner      TEXT NOT NULL,
		board       JSONB NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)`

	_, err := conn.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}
