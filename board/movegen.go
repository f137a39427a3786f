package board

// Precomputed destination lists for knights and kings from each square, in
// generation order. Bounds are resolved here so generation only has to test
// occupancy.
var knightTargets [8][8][]Square
var kingTargets [8][8][]Square

// knightOffsets is the fixed order in which knight destinations are emitted.
var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

func init() {
	initTargetTables()
}

// initTargetTables precomputes on-board knight and king destinations.
func initTargetTables() {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			for _, off := range knightOffsets {
				to := Square{r + off[0], c + off[1]}
				if to.OnBoard() {
					knightTargets[r][c] = append(knightTargets[r][c], to)
				}
			}

			// King order: row offset outer, column offset inner.
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					to := Square{r + dr, c + dc}
					if to.OnBoard() {
						kingTargets[r][c] = append(kingTargets[r][c], to)
					}
				}
			}
		}
	}
}

// pawnDirection is the row delta of a forward pawn step for each side.
var pawnDirection = [2]int{White: -1, Black: 1}

// pawnStartRow is the row from which a double push is allowed.
var pawnStartRow = [2]int{White: 6, Black: 1}

// GenerateMoves returns the pseudo-legal moves of side on g. Moves that leave
// the mover's own king attacked are not filtered.
func GenerateMoves(g *Grid, side Color) []Move {
	return GenerateMovesInto(make([]Move, 0, 64), g, side)
}

// GenerateMovesInto appends the moves to dst, scanning rows top to bottom and
// columns left to right.
func GenerateMovesInto(dst []Move, g *Grid, side Color) []Move {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := g[r][c]
			if !p.Belongs(side) {
				continue
			}
			dst = pieceMovesInto(dst, g, p, Square{r, c})
		}
	}
	return dst
}

// PieceMoves returns the moves of the piece standing on from. An empty square
// yields nil.
func PieceMoves(g *Grid, from Square) []Move {
	p := g.At(from)
	if p == NoPiece {
		return nil
	}
	return pieceMovesInto(nil, g, p, from)
}

func pieceMovesInto(dst []Move, g *Grid, p Piece, from Square) []Move {
	switch p.Kind() {
	case Pawn:
		return pawnMovesInto(dst, g, p.Color(), from)
	case Knight:
		return jumpMovesInto(dst, g, p.Color(), from, knightTargets[from.Row][from.Col])
	case King:
		return jumpMovesInto(dst, g, p.Color(), from, kingTargets[from.Row][from.Col])
	case Bishop, Rook, Queen:
		// Sliders are immobile in this engine.
		return dst
	default:
		return dst
	}
}

func pawnMovesInto(dst []Move, g *Grid, side Color, from Square) []Move {
	dir := pawnDirection[side]
	one := Square{from.Row + dir, from.Col}
	if !one.OnBoard() {
		return dst
	}

	if g.At(one) == NoPiece {
		dst = append(dst, Move{from, one})
		if from.Row == pawnStartRow[side] {
			two := Square{from.Row + 2*dir, from.Col}
			if g.At(two) == NoPiece {
				dst = append(dst, Move{from, two})
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := Square{one.Row, from.Col + dc}
		if !to.OnBoard() {
			continue
		}
		if g.At(to).Belongs(side.Other()) {
			dst = append(dst, Move{from, to})
		}
	}
	return dst
}

// jumpMovesInto emits every target not occupied by a piece of side.
func jumpMovesInto(dst []Move, g *Grid, side Color, from Square, targets []Square) []Move {
	for _, to := range targets {
		if g.At(to).Belongs(side) {
			continue
		}
		dst = append(dst, Move{from, to})
	}
	return dst
}
