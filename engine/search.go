package engine

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"minchess/board"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// Infinity is larger in magnitude than any score the search returns.
	Infinity = math.MaxInt32
	// NoMovesScore is reported when the side to move has no generated moves:
	// -NoMovesScore with White to move, +NoMovesScore with Black to move.
	// Checkmate, stalemate and a captured king all look alike here.
	NoMovesScore = 100000
)

// ErrInvalidDepth is returned by BestMove for a depth below one ply.
var ErrInvalidDepth = errors.New("search depth must be a positive number of plies")

// Result is the outcome of a search node. HasMove is false at depth 0 and
// when the side to move has no moves.
type Result struct {
	Score   int
	Move    board.Move
	HasMove bool
}

// MoveString returns the move text, or "" when there is no move.
func (r Result) MoveString() string {
	if !r.HasMove {
		return ""
	}
	return r.Move.String()
}

// Searcher runs fixed-depth searches. It keeps per-search statistics, so a
// Searcher must not be shared between goroutines; create one per goroutine.
type Searcher struct {
	tables *Tables
	log    zerolog.Logger
	stats  Stats
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTables replaces the default evaluation tables.
func WithTables(t *Tables) Option {
	return func(s *Searcher) { s.tables = t }
}

// WithLogger sets the logger used for per-search debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Searcher) { s.log = l }
}

// NewSearcher returns a Searcher using DefaultTables and a no-op logger.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{tables: DefaultTables, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the counters of the most recent search.
func (s *Searcher) Stats() Stats { return s.stats }

// Search runs alpha-beta from pos at the given depth, maximizing for White.
func (s *Searcher) Search(pos board.Position, depth int) Result {
	s.stats.reset()
	start := time.Now()
	res := s.AlphaBeta(&pos.Grid, depth, -Infinity, Infinity, pos.SideToMove == board.White)
	s.stats.Elapsed = time.Since(start)

	s.log.Debug().
		Str("fen", pos.FEN()).
		Int("depth", depth).
		Int("score", res.Score).
		Str("move", res.MoveString()).
		Object("stats", s.stats).
		Msg("search finished")
	return res
}

// BestMove returns the move chosen for the side to move, or false when that
// side has no moves (or depth is below one).
func (s *Searcher) BestMove(pos board.Position, depth int) (board.Move, bool) {
	res := s.Search(pos, depth)
	return res.Move, res.HasMove
}

// AlphaBeta is depth-limited minimax with alpha-beta pruning over the
// pseudo-legal move tree. Children are visited in generator order and the best
// move only changes on a strict improvement, so the first of equal moves wins.
func (s *Searcher) AlphaBeta(g *board.Grid, depth int, alpha, beta int, maximizing bool) Result {
	s.stats.Nodes++

	if depth <= 0 {
		s.stats.Leaves++
		return Result{Score: s.tables.Evaluate(g)}
	}

	side := board.Black
	if maximizing {
		side = board.White
	}
	moves := board.GenerateMoves(g, side)
	if len(moves) == 0 {
		s.stats.Terminals++
		return Result{Score: noMovesScore(maximizing)}
	}

	var best Result
	if maximizing {
		best.Score = -Infinity
		for _, move := range moves {
			child := board.Apply(*g, move)
			eval := s.AlphaBeta(&child, depth-1, alpha, beta, false).Score

			if eval > best.Score {
				best = Result{Score: eval, Move: move, HasMove: true}
			}
			alpha = Max(alpha, eval)
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
		return best
	}

	best.Score = Infinity
	for _, move := range moves {
		child := board.Apply(*g, move)
		eval := s.AlphaBeta(&child, depth-1, alpha, beta, true).Score

		if eval < best.Score {
			best = Result{Score: eval, Move: move, HasMove: true}
		}
		beta = Min(beta, eval)
		if beta <= alpha {
			s.stats.Cutoffs++
			break
		}
	}
	return best
}

// Minimax is AlphaBeta without pruning. It visits every node and exists to
// verify that pruning never changes the score.
func (s *Searcher) Minimax(g *board.Grid, depth int, maximizing bool) Result {
	s.stats.Nodes++

	if depth <= 0 {
		s.stats.Leaves++
		return Result{Score: s.tables.Evaluate(g)}
	}

	side := board.Black
	if maximizing {
		side = board.White
	}
	moves := board.GenerateMoves(g, side)
	if len(moves) == 0 {
		s.stats.Terminals++
		return Result{Score: noMovesScore(maximizing)}
	}

	best := Result{Score: Infinity}
	if maximizing {
		best.Score = -Infinity
	}
	for _, move := range moves {
		child := board.Apply(*g, move)
		eval := s.Minimax(&child, depth-1, !maximizing).Score
		if (maximizing && eval > best.Score) || (!maximizing && eval < best.Score) {
			best = Result{Score: eval, Move: move, HasMove: true}
		}
	}
	return best
}

func noMovesScore(whiteToMove bool) int {
	if whiteToMove {
		return -NoMovesScore
	}
	return NoMovesScore
}

// BestMove decodes fen and searches it to depth plies. The move text is empty
// and ok is false when the side to move has no moves.
func BestMove(fen string, depth int) (move string, ok bool, err error) {
	if depth < 1 {
		return "", false, ErrInvalidDepth
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return "", false, err
	}
	m, ok := NewSearcher().BestMove(pos, depth)
	if !ok {
		return "", false, nil
	}
	return m.String(), true, nil
}
