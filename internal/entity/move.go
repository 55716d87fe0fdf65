package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
)

// Move - is the transient record relayed over the peer link. It is never persisted.
type Move struct {
	Position  int       `json:"position"`
	Player    Marker    `json:"player"`
	Timestamp time.Time `json:"timestamp"`
}

func (that *Move) Validate() error {
	if !IsCellInRange(that.Position) {
		return fmt.Errorf("%w: position %d", apperror.ErrMalformedMove, that.Position)
	}

	if !that.Player.IsValid() {
		return fmt.Errorf("%w: player %q", apperror.ErrMalformedMove, that.Player)
	}

	return nil
}
