package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

func (that Status) rank() int {
	switch that {
	case StatusWaiting:
		return 1
	case StatusPlaying:
		return 2
	case StatusFinished:
		return 3
	default:
		return 0
	}
}

func (that Status) IsValid() bool {
	return that.rank() > 0
}

// CanAdvanceTo reports whether next keeps the lifecycle moving forward (or in place).
func (that Status) CanAdvanceTo(next Status) bool {
	return next.IsValid() && next.rank() >= that.rank()
}

// Session - is the authoritative shared record of one game.
type Session struct {
	ID            string    `json:"id"`
	HostID        string    `json:"host_id"`
	HostName      string    `json:"host_name,omitempty"`
	GuestID       string    `json:"guest_id,omitempty"`
	GuestName     string    `json:"guest_name,omitempty"`
	Board         Board     `json:"board"`
	CurrentPlayer Marker    `json:"current_player"`
	Status        Status    `json:"status"`
	Winner        Winner    `json:"winner,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastMoveAt    time.Time `json:"last_move_at"`
	Revision      int64     `json:"revision"`
}

// NewSession - builds the initial record a host publishes to the lobby.
func NewSession(host *Player, now time.Time) *Session {
	return &Session{
		HostID:        host.ID,
		HostName:      host.Name,
		CurrentPlayer: MarkerX,
		Status:        StatusWaiting,
		Winner:        WinnerNone,
		CreatedAt:     now,
		LastMoveAt:    now,
	}
}

func (that *Session) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Session) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) ConfirmPlayingState() error {
	switch that.Status {
	case StatusWaiting:
		return apperror.ErrGameIsNotStarted
	case StatusFinished:
		return apperror.ErrGameFinished
	case StatusPlaying:
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrInvalidUpdate, that.Status)
	}
}

// MarkerFor returns the marker the given participant plays with, or EmptyCell for spectators.
func (that *Session) MarkerFor(playerID string) Marker {
	switch {
	case playerID == "":
		return EmptyCell
	case playerID == that.HostID:
		return MarkerX
	case playerID == that.GuestID:
		return MarkerO
	default:
		return EmptyCell
	}
}

func (that *Session) Clone() *Session {
	if that == nil {
		return nil
	}

	clone := *that

	return &clone
}
