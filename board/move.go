package board

import (
	"errors"
	"fmt"
)

// Move relocates whatever stands on From to To. Captures, promotions and
// castling are not represented.
type Move struct {
	From Square
	To   Square
}

// NewMove builds a move from row/column coordinates.
func NewMove(fromRow, fromCol, toRow, toCol int) Move {
	return Move{From: Square{fromRow, fromCol}, To: Square{toRow, toCol}}
}

// String produces the four character move text, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ErrInvalidMoveText is matched by every move text parsing failure.
var ErrInvalidMoveText = errors.New("invalid move text")

// MoveTextError reports a move string that is not file-rank-file-rank.
type MoveTextError struct {
	Text string
}

func (e *MoveTextError) Error() string {
	return fmt.Sprintf("%v %q: want 4 characters like e2e4", ErrInvalidMoveText, e.Text)
}

func (e *MoveTextError) Unwrap() error { return ErrInvalidMoveText }

// ParseMove reads move text such as "e2e4". Only the pattern is checked; the
// move may still be illegal on any given grid.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, &MoveTextError{Text: s}
	}
	from, ok := ParseSquare(s[:2])
	if !ok {
		return Move{}, &MoveTextError{Text: s}
	}
	to, ok := ParseSquare(s[2:])
	if !ok {
		return Move{}, &MoveTextError{Text: s}
	}
	return Move{From: from, To: to}, nil
}

// Contains reports whether m is in moves.
func Contains(moves []Move, m Move) bool {
	for _, mv := range moves {
		if mv == m {
			return true
		}
	}
	return false
}
