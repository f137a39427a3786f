// Package game runs a human-versus-engine game on top of the board and engine
// packages. It owns turn alternation, move-text validation and the
// end-of-game verdict; the terminal UI and the HTTP service both drive it.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"minchess/board"
	"minchess/engine"
)

// DefaultDepth is the engine's search depth when Config.Depth is zero.
const DefaultDepth = 3

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not the human's turn")
	ErrIllegalMove = errors.New("move is not available in this position")
)

// MoveHint is shown to a player whose move text is malformed.
const MoveHint = "Wrong format. Enter a move like a1a2: the square the piece leaves, then the square it lands on."

// Config describes a new game. Zero fields take their defaults.
type Config struct {
	FEN   string      // starting position, board.StartFEN when empty
	Human board.Color // side the human plays
	Depth int         // engine search depth in plies
	// Strict rejects human moves that the move generator would not produce.
	// Without it any well-formed move is applied as typed.
	Strict bool
	Log    zerolog.Logger
}

// Status is the game verdict for the side to move.
type Status int

const (
	Ongoing Status = iota
	// Checkmate means the side to move has no moves while its king is on the
	// board. Stalemate is reported when it has no moves and no king. Neither
	// looks at attacks, so a blocked position with a king also counts as mate.
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Session is one game in progress. It is not safe for concurrent use.
type Session struct {
	cfg      Config
	pos      board.Position
	history  []string
	searcher *engine.Searcher
	log      zerolog.Logger
}

// New starts a game from cfg.
func New(cfg Config) (*Session, error) {
	if cfg.FEN == "" {
		cfg.FEN = board.StartFEN
	}
	if cfg.Depth == 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Depth < 0 {
		return nil, engine.ErrInvalidDepth
	}
	pos, err := board.ParseFEN(cfg.FEN)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:      cfg,
		pos:      pos,
		searcher: engine.NewSearcher(engine.WithLogger(cfg.Log)),
		log:      cfg.Log,
	}
	s.log.Info().Str("fen", pos.FEN()).Str("human", cfg.Human.String()).Int("depth", cfg.Depth).Msg("game started")
	return s, nil
}

func (s *Session) Position() board.Position { return s.pos }
func (s *Session) FEN() string              { return s.pos.FEN() }
func (s *Session) Turn() board.Color        { return s.pos.SideToMove }
func (s *Session) Human() board.Color       { return s.cfg.Human }
func (s *Session) Depth() int               { return s.cfg.Depth }
func (s *Session) HumanToMove() bool        { return s.pos.SideToMove == s.cfg.Human }

// History returns the moves played so far, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Status reports whether the side to move can still play.
func (s *Session) Status() Status {
	if len(board.GenerateMoves(&s.pos.Grid, s.pos.SideToMove)) > 0 {
		return Ongoing
	}
	if s.pos.Grid.HasKing(s.pos.SideToMove) {
		return Checkmate
	}
	return Stalemate
}

// Winner returns the winning side after a checkmate.
func (s *Session) Winner() (board.Color, bool) {
	if s.Status() != Checkmate {
		return 0, false
	}
	return s.pos.SideToMove.Other(), true
}

// Verdict is the end-of-game message, or "" while the game is on.
func (s *Session) Verdict() string {
	switch s.Status() {
	case Checkmate:
		winner, _ := s.Winner()
		return fmt.Sprintf("Checkmate! %s wins!", colorName(winner))
	case Stalemate:
		return "Stalemate! Draw."
	default:
		return ""
	}
}

func colorName(c board.Color) string {
	if c == board.White {
		return "White"
	}
	return "Black"
}

// PlayHuman applies the human's move. Text is trimmed and lower-cased first.
func (s *Session) PlayHuman(text string) error {
	if s.Status() != Ongoing {
		return ErrGameOver
	}
	if !s.HumanToMove() {
		return ErrNotYourTurn
	}
	m, err := board.ParseMove(strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		return err
	}
	if s.cfg.Strict && !board.Contains(board.GenerateMoves(&s.pos.Grid, s.pos.SideToMove), m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	s.play(m)
	s.log.Debug().Str("move", m.String()).Str("fen", s.pos.FEN()).Msg("human moved")
	return nil
}

// PlayEngine searches for the side to move and plays the result.
func (s *Session) PlayEngine() (string, error) {
	m, err := s.SearchReply()
	if err != nil {
		return "", err
	}
	if err := s.PlayReply(m); err != nil {
		return "", err
	}
	return m.String(), nil
}

// SearchReply finds the engine's move without playing it. It does not touch
// the position, so it may run while other goroutines read the session, but
// two searches must not overlap.
func (s *Session) SearchReply() (board.Move, error) {
	if s.HumanToMove() {
		return board.Move{}, ErrNotYourTurn
	}
	m, ok := s.searcher.BestMove(s.pos, s.cfg.Depth)
	if !ok {
		return board.Move{}, ErrGameOver
	}
	st := s.searcher.Stats()
	s.log.Info().
		Str("move", m.String()).
		Uint64("nodes", st.Nodes).
		Dur("elapsed", st.Elapsed).
		Msg("engine move found")
	return m, nil
}

// PlayReply plays a move found by SearchReply.
func (s *Session) PlayReply(m board.Move) error {
	if s.HumanToMove() {
		return ErrNotYourTurn
	}
	s.play(m)
	return nil
}

// Reply lets the engine move if it is the engine's turn and the game is
// not over. The empty string means no move was played.
func (s *Session) Reply() (string, error) {
	if s.HumanToMove() || s.Status() != Ongoing {
		return "", nil
	}
	return s.PlayEngine()
}

func (s *Session) play(m board.Move) {
	s.pos = s.pos.Play(m)
	s.history = append(s.history, m.String())
}
