package board

// Perft counts the leaf nodes of the pseudo-legal move tree of pos at depth.
// Sides alternate; no king-safety filtering is applied, so counts match full
// chess rules only while no checks or special moves appear.
func Perft(pos Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	g := pos.Grid
	return perftRec(&g, pos.SideToMove, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 64)
	}
	return buf[:0]
}

func perftRec(g *Grid, side Color, depth int, pc *perftCtx) uint64 {
	moves := GenerateMovesInto(pc.bufFor(depth), g, side)
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		u := g.MakeMove(m)
		nodes += perftRec(g, side.Other(), depth-1, pc)
		g.UnmakeMove(m, u)
	}
	return nodes
}

// PerftDivide returns the node count below each root move.
func PerftDivide(pos Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range GenerateMoves(&pos.Grid, pos.SideToMove) {
		result[m] = Perft(pos.Play(m), depth-1)
	}
	return result
}
