package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactelnet-backend/internal/apperror"
)

// ParseMove translates a trimmed move token into a board index 0..8.
// Two encodings are accepted: a single digit 1-9, or a coordinate pair of a
// row letter a-c (case-insensitive) and a column digit 1-3, e.g. "b2".
// The token is validated in full before any index is computed.
func ParseMove(token string) (int, error) {
	switch len(token) {
	case 1:
		digit := token[0]
		if digit < '1' || digit > '9' {
			return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, token)
		}
		return int(digit - '1'), nil
	case 2:
		row := lowercase(token[0])
		if row < 'a' || row > 'c' {
			return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, token)
		}

		col := token[1]
		if col < '1' || col > '3' {
			return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, token)
		}

		return int(row-'a')*3 + int(col-'1'), nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, token)
	}
}

func lowercase(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
