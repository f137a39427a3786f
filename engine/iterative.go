package engine

import (
	"context"
	"time"

	"minchess/board"
)

// Info describes one completed iteration of Think.
type Info struct {
	Depth   int
	Score   int
	Move    board.Move
	HasMove bool
	Nodes   uint64
	Elapsed time.Duration
}

// Think searches pos at depths 1, 2, ... maxDepth and returns the result of
// the deepest completed depth together with that depth. The context is only
// checked between depths: a depth that has started always runs to the end,
// and depth 1 always runs so a move is available whenever one exists.
// onInfo, if non-nil, is called after every completed depth.
func (s *Searcher) Think(ctx context.Context, pos board.Position, maxDepth int, onInfo func(Info)) (Result, int) {
	var best Result
	reached := 0
	start := time.Now()
	var nodes uint64

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && ctx.Err() != nil {
			break
		}

		res := s.Search(pos, depth)
		nodes += s.stats.Nodes
		best, reached = res, depth

		if onInfo != nil {
			onInfo(Info{
				Depth:   depth,
				Score:   res.Score,
				Move:    res.Move,
				HasMove: res.HasMove,
				Nodes:   nodes,
				Elapsed: time.Since(start),
			})
		}

		// No moves at the root stays true at every depth.
		if !res.HasMove {
			break
		}
	}
	return best, reached
}
