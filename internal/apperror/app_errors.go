package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")

	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotJoinable = errors.New("session is not open for joining")
	ErrOwnSession         = errors.New("cannot join your own session")
	ErrStaleRevision      = errors.New("session was modified concurrently")
	ErrInvalidUpdate      = errors.New("invalid session update")
	ErrStoreWrite         = errors.New("session store write failed")

	ErrPlayerNotFound = errors.New("player not found")
	ErrMalformedMove  = errors.New("malformed move")
)
