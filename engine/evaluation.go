package engine

import "minchess/board"

// Evaluate scores g with DefaultTables. Positive favors White.
func Evaluate(g *board.Grid) int {
	return DefaultTables.Evaluate(g)
}

// Evaluate returns material plus piece-square bonuses, White pieces counted
// positive and Black negative. Black pieces read their table with the rows
// flipped so both sides see the table from their own back rank.
func (t *Tables) Evaluate(g *board.Grid) int {
	score := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := g[r][c]
			if p == board.NoPiece {
				continue
			}
			kind := p.Kind()
			if p.Color() == board.White {
				score += t.Value[kind] + t.PST[kind][r][c]
			} else {
				score -= t.Value[kind] + t.PST[kind][7-r][c]
			}
		}
	}
	return score
}

// Terms is a per-kind breakdown of an evaluation, used by the UCI "eval"
// command.
type Terms struct {
	Material   [7]int
	Positional [7]int
}

// Total sums every term.
func (tm Terms) Total() int {
	total := 0
	for k := range tm.Material {
		total += tm.Material[k] + tm.Positional[k]
	}
	return total
}

// Breakdown splits the evaluation of g into material and positional parts
// per piece kind. Total() always equals Evaluate(g).
func (t *Tables) Breakdown(g *board.Grid) Terms {
	var tm Terms
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := g[r][c]
			if p == board.NoPiece {
				continue
			}
			kind := p.Kind()
			if p.Color() == board.White {
				tm.Material[kind] += t.Value[kind]
				tm.Positional[kind] += t.PST[kind][r][c]
			} else {
				tm.Material[kind] -= t.Value[kind]
				tm.Positional[kind] -= t.PST[kind][7-r][c]
			}
		}
	}
	return tm
}
