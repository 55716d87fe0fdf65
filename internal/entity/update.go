package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
)

// SessionUpdate - is a partial write. Nil fields are left untouched.
type SessionUpdate struct {
	Board         *Board
	CurrentPlayer *Marker
	Status        *Status
	Winner        *Winner
	LastMoveAt    *time.Time
	GuestID       *string
	GuestName     *string
}

// NewTurnUpdate - the write for a move that keeps the game going.
func NewTurnUpdate(board Board, next Marker, at time.Time) *SessionUpdate {
	return &SessionUpdate{
		Board:         &board,
		CurrentPlayer: &next,
		LastMoveAt:    &at,
	}
}

// NewFinishUpdate - the write for a move that ends the game.
func NewFinishUpdate(board Board, winner Winner, at time.Time) *SessionUpdate {
	status := StatusFinished

	return &SessionUpdate{
		Board:      &board,
		Status:     &status,
		Winner:     &winner,
		LastMoveAt: &at,
	}
}

func NewJoinUpdate(guest *Player) *SessionUpdate {
	status := StatusPlaying
	guestID := guest.ID
	guestName := guest.Name

	return &SessionUpdate{
		Status:    &status,
		GuestID:   &guestID,
		GuestName: &guestName,
	}
}

func (that *SessionUpdate) IsEmpty() bool {
	return that.Board == nil && that.CurrentPlayer == nil && that.Status == nil && that.Winner == nil &&
		that.LastMoveAt == nil && that.GuestID == nil && that.GuestName == nil
}

// Validate checks the fields present in the update on their own.
func (that *SessionUpdate) Validate() error {
	if that.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", apperror.ErrInvalidUpdate)
	}

	if that.CurrentPlayer != nil && !that.CurrentPlayer.IsValid() {
		return fmt.Errorf("%w: current player %q", apperror.ErrInvalidUpdate, *that.CurrentPlayer)
	}

	if that.Status != nil && !that.Status.IsValid() {
		return fmt.Errorf("%w: status %q", apperror.ErrInvalidUpdate, *that.Status)
	}

	if that.Winner != nil && !that.Winner.IsValid() {
		return fmt.Errorf("%w: winner %q", apperror.ErrInvalidUpdate, *that.Winner)
	}

	if that.Board != nil {
		for i, cell := range that.Board {
			if cell != EmptyCell && !cell.IsValid() {
				return fmt.Errorf("%w: marker %q at cell %d", apperror.ErrInvalidUpdate, cell, i)
			}
		}
	}

	// winner is set exactly when the game is finished
	finishing := that.Status != nil && *that.Status == StatusFinished
	hasWinner := that.Winner != nil && *that.Winner != WinnerNone

	if finishing && !hasWinner {
		return fmt.Errorf("%w: finished without a winner", apperror.ErrInvalidUpdate)
	}

	if hasWinner && !finishing {
		return fmt.Errorf("%w: winner set on an unfinished game", apperror.ErrInvalidUpdate)
	}

	return nil
}

// ApplyTo merges the update into session, rejecting a status that would move backwards.
func (that *SessionUpdate) ApplyTo(session *Session) error {
	if that.Status != nil && !session.Status.CanAdvanceTo(*that.Status) {
		return fmt.Errorf("%w: status %q cannot follow %q", apperror.ErrInvalidUpdate, *that.Status, session.Status)
	}

	if that.Board != nil {
		session.Board = *that.Board
	}

	if that.CurrentPlayer != nil {
		session.CurrentPlayer = *that.CurrentPlayer
	}

	if that.Status != nil {
		session.Status = *that.Status
	}

	if that.Winner != nil {
		session.Winner = *that.Winner
	}

	if that.LastMoveAt != nil {
		session.LastMoveAt = *that.LastMoveAt
	}

	if that.GuestID != nil {
		session.GuestID = *that.GuestID
	}

	if that.GuestName != nil {
		session.GuestName = *that.GuestName
	}

	return nil
}
