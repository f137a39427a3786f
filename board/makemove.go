package board

// Apply returns a copy of g with m played: the destination receives the moving
// piece and the source is cleared. Any piece on the destination is captured by
// being overwritten. No legality or occupancy checks are made; g is untouched.
func Apply(g Grid, m Move) Grid {
	g[m.To.Row][m.To.Col] = g[m.From.Row][m.From.Col]
	g[m.From.Row][m.From.Col] = NoPiece
	return g
}

// Undo holds what MakeMove overwrote.
type Undo struct {
	moved    Piece
	captured Piece
}

// Captured returns the piece that stood on the destination, if any.
func (u Undo) Captured() Piece { return u.captured }

// MakeMove plays m on g in place. The result is identical to Apply.
func (g *Grid) MakeMove(m Move) Undo {
	u := Undo{moved: g.At(m.From), captured: g.At(m.To)}
	g.Set(m.To, u.moved)
	g.Set(m.From, NoPiece)
	return u
}

// UnmakeMove restores the grid to its state before MakeMove(m).
func (g *Grid) UnmakeMove(m Move, u Undo) {
	g.Set(m.From, u.moved)
	g.Set(m.To, u.captured)
}
