package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-online/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-online/internal/entity"
)

// WinCombos - every line that wins, scanned in this order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CheckWinner - returns the holder of the first full line, a draw on a full board, or none.
func CheckWinner(board entity.Board) entity.Winner {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.WinnerFromMarker(a)
		}
	}

	if board.IsFull() {
		return entity.WinnerDraw
	}

	return entity.WinnerNone
}

func NextMarker(current entity.Marker) entity.Marker {
	if current == entity.MarkerX {
		return entity.MarkerO
	}
	return entity.MarkerX
}

// ValidateMove - checks whether marker may take cell in session right now.
func ValidateMove(session *entity.Session, marker entity.Marker, cell int) error {
	if err := session.ConfirmPlayingState(); err != nil {
		return err
	}

	if !entity.IsCellInRange(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !marker.IsValid() || session.CurrentPlayer != marker {
		return apperror.ErrNotYourTurn
	}

	if !session.Board.IsCellEmpty(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// MakeTurn applies a legal move to session and returns the single write that records it:
// either the finishing fields or the turn-advancing fields, never both.
func MakeTurn(session *entity.Session, marker entity.Marker, cell int, now time.Time) (*entity.SessionUpdate, error) {
	if err := ValidateMove(session, marker, cell); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	board := session.Board
	board[cell] = marker

	var update *entity.SessionUpdate
	if winner := CheckWinner(board); winner != entity.WinnerNone {
		update = entity.NewFinishUpdate(board, winner, now)
	} else {
		update = entity.NewTurnUpdate(board, NextMarker(marker), now)
	}

	if err := update.ApplyTo(session); err != nil {
		return nil, fmt.Errorf("failed to apply turn: %w", err)
	}

	return update, nil
}
