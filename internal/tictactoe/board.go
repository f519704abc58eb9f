package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactelnet-backend/internal/entity"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MakeTurn applies one move for the given mark and advances the room state:
// on a non-terminal move the turn flips, on a terminal one the winner and
// status are set.
func MakeTurn(room *entity.Room, mark string, cell int) error {
	if room.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(room, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[cell] = mark
	updateRoomStatus(room, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(room *entity.Room, mark string, cell int) error {
	if cell < 0 || cell >= len(room.Board) {
		return apperror.ErrInvalidCell
	}

	if room.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if room.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateRoomStatus - checks the room status after a move.
func updateRoomStatus(room *entity.Room, mark string) {
	switch winner := Evaluate(room.Board); winner {
	case entity.MarkX, entity.MarkO:
		room.Winner = winner
		room.Status = entity.StatusFinished
	case entity.MarkTie:
		room.Winner = entity.MarkTie
		room.Status = entity.StatusFinished
	default:
		room.Turn = toggleMark(mark)
	}
}

func toggleMark(currentMark string) string {
	if currentMark == entity.MarkX {
		return entity.MarkO
	}
	return entity.MarkX
}

// Evaluate returns the winning mark if any of the 8 lines is fully occupied
// by it, MarkTie for a full board with no line, and "" while the game is
// still open. The win check runs before the tie check.
func Evaluate(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return ""
		}
	}

	return entity.MarkTie
}

// FormatBoard renders the board as three |xo-| rows.
func FormatBoard(board [9]string) string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		sb.WriteString("|")
		for col := 0; col < 3; col++ {
			cell := board[row*3+col]
			if cell == entity.EmptyCell {
				cell = "-"
			}
			sb.WriteString(cell)
		}
		sb.WriteString("|")
		if row < 2 {
			sb.WriteString("\r\n")
		}
	}

	return sb.String()
}
