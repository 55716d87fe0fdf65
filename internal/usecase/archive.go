package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

const archiveTimeout = 5 * time.Second

type resultRepo interface {
	Save(ctx context.Context, session *entity.Session) error
}

// Archiver - copies finished games into long term storage.
type Archiver struct {
	logger *slog.Logger
	repo   resultRepo
}

func NewArchiver(logger *slog.Logger, repo resultRepo) *Archiver {
	return &Archiver{
		logger: logger.With("component", "archiver"),
		repo:   repo,
	}
}

// Record - meant as a game end listener. Failures are logged, the live game is not affected.
func (that *Archiver) Record(session *entity.Session) {
	log := that.logger.With("method", "Record", "sessionID", session.ID)

	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, session); err != nil {
		log.Error("failed to archive game", "error", err)
		return
	}

	log.Info("game archived", "winner", session.Winner)
}
