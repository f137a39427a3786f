package board

import "strings"

// Square is a (row, column) cell address. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int
	Col int
}

// OnBoard reports whether the square lies inside the 8x8 grid.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// String returns the algebraic name of the square, e.g. "e2".
func (s Square) String() string {
	return string([]byte{'a' + byte(s.Col), '8' - byte(s.Row)})
}

// ParseSquare reads a two character square name.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, false
	}
	return Square{Row: int('8' - s[1]), Col: int(s[0] - 'a')}, true
}

// Grid is the piece placement of a position. It is a value type: assigning a
// Grid copies every cell.
type Grid [8][8]Piece

// At returns the piece on sq.
func (g *Grid) At(sq Square) Piece { return g[sq.Row][sq.Col] }

// Set places p on sq, replacing whatever was there.
func (g *Grid) Set(sq Square, p Piece) { g[sq.Row][sq.Col] = p }

// Count returns how many copies of p are on the grid.
func (g *Grid) Count(p Piece) int {
	n := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if g[r][c] == p {
				n++
			}
		}
	}
	return n
}

// HasKing reports whether side c still has a king on the board.
func (g *Grid) HasKing(c Color) bool {
	return g.Count(NewPiece(c, King)) > 0
}

// Mirror flips ranks and swaps colors.
func (g *Grid) Mirror() Grid {
	var out Grid
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[7-r][c] = g[r][c].Mirror()
		}
	}
	return out
}

// String renders the grid as eight lines of piece letters, '.' for empty.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(g[r][c].Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Position is a grid plus the side to move. It is the only game state that
// is exchanged between turns.
type Position struct {
	Grid       Grid
	SideToMove Color
}

// FEN encodes the position in notation.
func (p Position) FEN() string { return EncodeFEN(&p.Grid, p.SideToMove) }

// Play applies m and hands the move to the other side.
func (p Position) Play(m Move) Position {
	return Position{Grid: Apply(p.Grid, m), SideToMove: p.SideToMove.Other()}
}
