package entity

import (
	"encoding/json"
	"fmt"
)

type Marker string

const (
	MarkerX Marker = "X"
	MarkerO Marker = "O"

	EmptyCell Marker = ""
)

func (that Marker) IsValid() bool {
	return that == MarkerX || that == MarkerO
}

type Winner string

const (
	WinnerX    Winner = "X"
	WinnerO    Winner = "O"
	WinnerDraw Winner = "draw"
	WinnerNone Winner = ""
)

func (that Winner) IsValid() bool {
	switch that {
	case WinnerX, WinnerO, WinnerDraw, WinnerNone:
		return true
	default:
		return false
	}
}

// WinnerFromMarker maps the marker holding a full line to its winner value.
func WinnerFromMarker(marker Marker) Winner {
	switch marker {
	case MarkerX:
		return WinnerX
	case MarkerO:
		return WinnerO
	default:
		return WinnerNone
	}
}

const BoardSize = 9

// Board - is the 3x3 grid in row-major order, cells 0..8.
type Board [BoardSize]Marker

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) IsCellEmpty(cell int) bool {
	return that[cell] == EmptyCell
}

func IsCellInRange(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// MarshalJSON encodes empty cells as null.
func (that Board) MarshalJSON() ([]byte, error) {
	cells := make([]*Marker, BoardSize)
	for i := range that {
		if that[i] != EmptyCell {
			marker := that[i]
			cells[i] = &marker
		}
	}

	return json.Marshal(cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []*Marker
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("board must have %d cells, got %d", BoardSize, len(cells))
	}

	var board Board
	for i, cell := range cells {
		if cell == nil || *cell == EmptyCell {
			continue
		}

		if !cell.IsValid() {
			return fmt.Errorf("invalid marker %q at cell %d", *cell, i)
		}

		board[i] = *cell
	}

	*that = board

	return nil
}
