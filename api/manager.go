package api

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"minchess/game"
)

var ErrGameNotFound = errors.New("game not found")

// socket is the part of a WebSocket connection the manager writes to.
type socket interface {
	WriteJSON(v any) error
	Close() error
}

// entry is one hosted game. mu guards the session; connMu guards conns and
// serialises writes to them.
type entry struct {
	id      string
	mu      sync.Mutex
	session *game.Session

	connMu sync.Mutex
	conns  map[socket]struct{}
}

func (e *entry) state(engineMove string) GameState {
	s := e.session
	return GameState{
		ID:         e.id,
		FEN:        s.FEN(),
		Turn:       s.Turn().String(),
		Human:      s.Human().String(),
		Depth:      s.Depth(),
		Status:     s.Status().String(),
		Verdict:    s.Verdict(),
		History:    s.History(),
		EngineMove: engineMove,
	}
}

func (e *entry) send(conn socket, msg Message) error {
	e.connMu.Lock()
	defer e.connMu.Unlock()
	return conn.WriteJSON(msg)
}

func (e *entry) broadcast(msg Message) int {
	e.connMu.Lock()
	defer e.connMu.Unlock()
	failed := 0
	for conn := range e.conns {
		if err := conn.WriteJSON(msg); err != nil {
			failed++
		}
	}
	return failed
}

func (e *entry) detach(conn socket) {
	e.connMu.Lock()
	delete(e.conns, conn)
	e.connMu.Unlock()
}

// Manager hosts human-versus-engine games by id.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*entry
	log   zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{games: make(map[string]*entry), log: log}
}

// Create starts a game. When the engine has the first move it is played
// before Create returns.
func (m *Manager) Create(cfg game.Config) (GameState, error) {
	cfg.Log = m.log
	s, err := game.New(cfg)
	if err != nil {
		return GameState{}, err
	}
	e := &entry{id: uuid.New().String(), session: s, conns: make(map[socket]struct{})}

	reply, err := s.Reply()
	if err != nil {
		return GameState{}, err
	}

	m.mu.Lock()
	m.games[e.id] = e
	m.mu.Unlock()

	m.log.Info().Str("game", e.id).Str("fen", s.FEN()).Msg("game created")
	return e.state(reply), nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

// Get returns the current state of a game.
func (m *Manager) Get(id string) (GameState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return GameState{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state(""), nil
}

// Move plays the human's move and the engine's reply, then pushes the new
// state to every connection watching the game.
func (m *Manager) Move(id, text string) (GameState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return GameState{}, err
	}

	e.mu.Lock()
	if err := e.session.PlayHuman(text); err != nil {
		e.mu.Unlock()
		return GameState{}, err
	}
	reply, err := e.session.Reply()
	if err != nil {
		e.mu.Unlock()
		return GameState{}, err
	}
	st := e.state(reply)
	e.mu.Unlock()

	if failed := e.broadcast(stateMessage(st)); failed > 0 {
		m.log.Warn().Str("game", id).Int("failed", failed).Msg("broadcast incomplete")
	}
	return st, nil
}

// Delete ends a game and closes its connections.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	e, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}

	e.connMu.Lock()
	for conn := range e.conns {
		_ = conn.Close()
	}
	e.conns = make(map[socket]struct{})
	e.connMu.Unlock()

	m.log.Info().Str("game", id).Msg("game deleted")
	return nil
}

// attach registers conn for broadcasts of game id.
func (m *Manager) attach(id string, conn socket) (*entry, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	e.connMu.Lock()
	e.conns[conn] = struct{}{}
	e.connMu.Unlock()
	return e, nil
}

// Len is the number of hosted games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
