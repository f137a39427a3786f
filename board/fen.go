package board

import (
	"errors"
	"fmt"
	"strings"
)

// StartFEN is the notation of the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// placeholderFields stands in for castling rights, en passant target, halfmove
// clock and fullmove number, none of which the engine tracks.
const placeholderFields = "- - 0 1"

// ErrFormat is matched by every notation decoding failure.
var ErrFormat = errors.New("invalid FEN")

// FormatError describes why a notation string was rejected. Rank is the
// 0-based rank descriptor index, or -1 when the problem is not in a rank.
type FormatError struct {
	Rank   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Rank < 0 {
		return fmt.Sprintf("%v: %s", ErrFormat, e.Reason)
	}
	return fmt.Sprintf("%v: rank %d: %s", ErrFormat, e.Rank+1, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

func formatErr(rank int, format string, args ...any) error {
	return &FormatError{Rank: rank, Reason: fmt.Sprintf(format, args...)}
}

// ParseFEN decodes piece placement and side to move. Castling, en passant and
// move counters are accepted but ignored.
func ParseFEN(fen string) (Position, error) {
	var pos Position
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return pos, formatErr(-1, "empty notation")
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return pos, formatErr(-1, "expected 8 ranks, got %d", len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				if col > 8 {
					return pos, formatErr(row, "more than 8 squares")
				}
				continue
			}
			piece, ok := pieceFromChar(ch)
			if !ok {
				return pos, formatErr(row, "unrecognized character %q", ch)
			}
			if col >= 8 {
				return pos, formatErr(row, "more than 8 squares")
			}
			pos.Grid[row][col] = piece
			col++
		}
		if col != 8 {
			return pos, formatErr(row, "describes %d squares, want 8", col)
		}
	}

	if len(fields) < 2 {
		return pos, formatErr(-1, "missing side to move")
	}
	side, ok := ParseColor(fields[1])
	if !ok {
		return pos, formatErr(-1, "side to move must be 'w' or 'b', got %q", fields[1])
	}
	pos.SideToMove = side
	return pos, nil
}

// EncodeFEN produces notation for the grid and side. The trailing fields are
// always the fixed placeholders "- - 0 1".
func EncodeFEN(g *Grid, side Color) string {
	var sb strings.Builder
	sb.Grow(64)
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := g[row][col]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(side.String())
	sb.WriteByte(' ')
	sb.WriteString(placeholderFields)
	return sb.String()
}

// Placement returns only the piece placement field of the notation.
func Placement(g *Grid) string {
	fen := EncodeFEN(g, White)
	return fen[:strings.IndexByte(fen, ' ')]
}
