// Package crosscheck compares the engine's pseudo-legal move generation with
// full-rules move generators. Nothing here feeds the search; it backs the
// perft tool, the UCI "d" command and tests.
package crosscheck

import (
	"errors"
	"fmt"
	"sort"

	goosemg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"minchess/board"
)

// ErrUnsupported is returned for positions the reference generators cannot
// handle: they all assume exactly one king per side.
var ErrUnsupported = errors.New("position not supported by reference move generator")

// Outcome is the full-rules status of a position.
type Outcome int

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Report splits the engine's moves by agreement with full chess rules.
type Report struct {
	Agreed     []string // generated here and legal
	PseudoOnly []string // generated here but illegal (own king left attacked)
	Missing    []string // legal pawn, knight or king moves not generated here
}

// prepare decodes fen and re-encodes it with the engine's placeholders so
// every reference library sees the same normalised notation.
func prepare(fen string) (board.Position, string, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return pos, "", err
	}
	if pos.Grid.Count(board.WhiteKing) != 1 || pos.Grid.Count(board.BlackKing) != 1 {
		return pos, "", fmt.Errorf("%w: need exactly one king per side", ErrUnsupported)
	}
	return pos, pos.FEN(), nil
}

// guard turns a panic inside a reference library into an error.
func guard(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrUnsupported, r)
	}
}

// LegalMoves lists the full-rules legal moves of the side to move, as
// reported by dragontoothmg. Promotions carry their piece letter ("e7e8q").
func LegalMoves(fen string) (moves []string, err error) {
	_, norm, err := prepare(fen)
	if err != nil {
		return nil, err
	}
	defer guard(&err)

	b := dragontoothmg.ParseFen(norm)
	legal := b.GenerateLegalMoves()
	moves = make([]string, 0, len(legal))
	for i := range legal {
		moves = append(moves, legal[i].String())
	}
	sort.Strings(moves)
	return moves, nil
}

// Compare checks the engine's generated moves for the side to move against
// dragontoothmg. Moves are compared by their from/to squares only, so a
// promotion is matched by the plain push that reaches the last rank.
func Compare(fen string) (Report, error) {
	var rep Report
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return rep, err
	}
	legal, err := LegalMoves(fen)
	if err != nil {
		return rep, err
	}

	legalSet := make(map[string]bool, len(legal))
	for _, m := range legal {
		legalSet[m[:4]] = true
	}

	ours := make(map[string]bool)
	for _, m := range board.GenerateMoves(&pos.Grid, pos.SideToMove) {
		s := m.String()
		ours[s] = true
		if legalSet[s] {
			rep.Agreed = append(rep.Agreed, s)
		} else {
			rep.PseudoOnly = append(rep.PseudoOnly, s)
		}
	}

	seen := make(map[string]bool)
	for _, m := range legal {
		key := m[:4]
		if ours[key] || seen[key] {
			continue
		}
		seen[key] = true
		from, _ := board.ParseSquare(key[:2])
		switch pos.Grid.At(from).Kind() {
		case board.Pawn, board.Knight, board.King:
			rep.Missing = append(rep.Missing, key)
		case board.Bishop, board.Rook, board.Queen:
			// Sliders never move in this engine.
		}
	}
	sort.Strings(rep.Missing)
	return rep, nil
}

// Perft counts full-rules legal move sequences with GooseEngineMG.
func Perft(fen string, depth int) (nodes uint64, err error) {
	_, norm, err := prepare(fen)
	if err != nil {
		return 0, err
	}
	defer guard(&err)

	b, err := goosemg.ParseFEN(norm)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return goosemg.Perft(b, depth), nil
}

func notnilGame(norm string) (*chess.Game, error) {
	opt, err := chess.FEN(norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return chess.NewGame(opt), nil
}

// Status reports whether the side to move is checkmated or stalemated under
// full chess rules, using notnil/chess.
func Status(fen string) (out Outcome, err error) {
	_, norm, err := prepare(fen)
	if err != nil {
		return Ongoing, err
	}
	defer guard(&err)

	game, err := notnilGame(norm)
	if err != nil {
		return Ongoing, err
	}
	switch game.Position().Status() {
	case chess.Checkmate:
		return Checkmate, nil
	case chess.Stalemate:
		return Stalemate, nil
	default:
		return Ongoing, nil
	}
}

// Diagram renders the position as text with notnil/chess.
func Diagram(fen string) (diagram string, err error) {
	_, norm, err := prepare(fen)
	if err != nil {
		return "", err
	}
	defer guard(&err)

	game, err := notnilGame(norm)
	if err != nil {
		return "", err
	}
	return game.Position().Board().Draw(), nil
}
