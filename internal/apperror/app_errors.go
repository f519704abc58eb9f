package apperror

import "errors"

var (
	ErrRoomNotFound       = errors.New("room does not exist")
	ErrRoomAlreadyStarted = errors.New("room is already started")
	ErrCodeCollision      = errors.New("room code collides with an active room")
	ErrEmptyWordPool      = errors.New("word pool is empty")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMove  = errors.New("invalid move token")
)
