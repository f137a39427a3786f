package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"minchess/board"
	"minchess/engine"
	"minchess/game"
)

func newTestServer() *Server {
	s, err := New(Config{Depth: 2, Log: zerolog.Nop()})
	if err != nil {
		panic(err)
	}
	return s
}

func do(t *testing.T, s *Server, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestNewRejectsDepthOutOfRange(t *testing.T) {
	for _, cfg := range []Config{
		{Depth: -1},
		{Depth: 7, MaxDepth: 6},
		{Depth: 2, MaxDepth: -3},
	} {
		if _, err := New(cfg); !errors.Is(err, engine.ErrInvalidDepth) {
			t.Fatalf("depth %d max %d: expected ErrInvalidDepth, got %v", cfg.Depth, cfg.MaxDepth, err)
		}
	}
	if _, err := New(Config{}); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	resp, _ := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer()
	resp, data := do(t, s, http.MethodPost, "/api/analyze", `{"fen":"`+board.StartFEN+`","depth":2}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	got := decode[analyzeResponse](t, data)
	if got.BestMove == nil || len(*got.BestMove) != 4 || got.Nodes == 0 || got.Depth != 2 {
		t.Fatalf("unexpected analysis %+v", got)
	}

	resp, data = do(t, s, http.MethodPost, "/api/analyze", `{"fen":"7k/8/8/8/8/8/8/B7 w","depth":1}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	got = decode[analyzeResponse](t, data)
	if got.BestMove != nil || got.Score != -100000 {
		t.Fatalf("expected no move and -100000, got %+v", got)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	s := newTestServer()
	cases := []struct {
		body string
		want int
	}{
		{`{"fen":"8/8 w","depth":1}`, fiber.StatusBadRequest},
		{`{"fen":"` + board.StartFEN + `","depth":99}`, fiber.StatusBadRequest},
		{`{"fen":"` + board.StartFEN + `","depth":-1}`, fiber.StatusBadRequest},
		{`not json`, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, data := do(t, s, http.MethodPost, "/api/analyze", tc.body)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: status %d want %d (%s)", tc.body, resp.StatusCode, tc.want, data)
		}
	}
}

func TestMoves(t *testing.T) {
	s := newTestServer()
	resp, data := do(t, s, http.MethodGet, "/api/moves?fen=4k3/8/8/8/8/8/8/4K3%20w", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	got := decode[movesResponse](t, data)
	want := []string{"e1d2", "e1e2", "e1f2", "e1d1", "e1f1"}
	if strings.Join(got.Moves, ",") != strings.Join(want, ",") {
		t.Fatalf("moves %v want %v", got.Moves, want)
	}

	resp, _ = do(t, s, http.MethodGet, "/api/moves", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("missing fen: status %d", resp.StatusCode)
	}
}

func TestGameLifecycle(t *testing.T) {
	s := newTestServer()
	resp, data := do(t, s, http.MethodPost, "/api/games", `{"human":"w","depth":1}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: status %d: %s", resp.StatusCode, data)
	}
	st := decode[GameState](t, data)
	if st.ID == "" || st.Turn != "w" || st.Status != "ongoing" || st.EngineMove != "" {
		t.Fatalf("unexpected new game %+v", st)
	}

	resp, data = do(t, s, http.MethodPost, "/api/games/"+st.ID+"/moves", `{"move":"e2e4"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("move: status %d: %s", resp.StatusCode, data)
	}
	st = decode[GameState](t, data)
	if len(st.History) != 2 || st.History[0] != "e2e4" || st.EngineMove != st.History[1] || st.Turn != "w" {
		t.Fatalf("unexpected state after move %+v", st)
	}

	resp, data = do(t, s, http.MethodPost, "/api/games/"+st.ID+"/moves", `{"move":"a1a5"}`)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("illegal move: status %d: %s", resp.StatusCode, data)
	}
	resp, _ = do(t, s, http.MethodPost, "/api/games/"+st.ID+"/moves", `{"move":"zz99"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad move text: status %d", resp.StatusCode)
	}

	resp, data = do(t, s, http.MethodGet, "/api/games/"+st.ID, "")
	if resp.StatusCode != fiber.StatusOK || decode[GameState](t, data).FEN != st.FEN {
		t.Fatalf("get: status %d: %s", resp.StatusCode, data)
	}

	resp, _ = do(t, s, http.MethodDelete, "/api/games/"+st.ID, "")
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	resp, _ = do(t, s, http.MethodGet, "/api/games/"+st.ID, "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("get after delete: status %d", resp.StatusCode)
	}
}

func TestCreateGameEngineFirst(t *testing.T) {
	s := newTestServer()
	resp, data := do(t, s, http.MethodPost, "/api/games", `{"human":"b","depth":1}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	st := decode[GameState](t, data)
	if st.EngineMove == "" || st.Turn != "b" || len(st.History) != 1 {
		t.Fatalf("engine did not open: %+v", st)
	}

	resp, _ = do(t, s, http.MethodPost, "/api/games", `{"human":"x"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad side: status %d", resp.StatusCode)
	}
}

func TestFinishedGameConflicts(t *testing.T) {
	s := newTestServer()
	resp, data := do(t, s, http.MethodPost, "/api/games", `{"fen":"7k/8/8/8/8/8/BB6/KB6 w"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	st := decode[GameState](t, data)
	if st.Status != "checkmate" || st.Verdict == "" {
		t.Fatalf("expected finished game, got %+v", st)
	}
	resp, _ = do(t, s, http.MethodPost, "/api/games/"+st.ID+"/moves", `{"move":"a1a2"}`)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("move in finished game: status %d", resp.StatusCode)
	}
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer()
	resp, _ := do(t, s, http.MethodPost, "/api/games/nope/moves", `{"move":"e2e4"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
	resp, _ = do(t, s, http.MethodDelete, "/api/games/nope", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
}

func TestSocketRouteRequiresUpgrade(t *testing.T) {
	resp, _ := do(t, newTestServer(), http.MethodGet, "/ws/games/abc", "")
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

type fakeSocket struct {
	mu     sync.Mutex
	msgs   []Message
	closed bool
}

func (f *fakeSocket) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, v.(Message))
	return nil
}

func (f *fakeSocket) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestManagerBroadcastsMoves(t *testing.T) {
	m := NewManager(zerolog.Nop())
	st, err := m.Create(game.Config{Depth: 1, Strict: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	a, b := &fakeSocket{}, &fakeSocket{}
	for _, conn := range []*fakeSocket{a, b} {
		if _, err := m.attach(st.ID, conn); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}

	if _, err := m.Move(st.ID, "e2e4"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	for i, conn := range []*fakeSocket{a, b} {
		if len(conn.msgs) != 1 || conn.msgs[0].Type != MessageTypeGameState {
			t.Fatalf("conn %d got %+v", i, conn.msgs)
		}
		got := decode[GameState](t, conn.msgs[0].Payload)
		if got.History[0] != "e2e4" {
			t.Fatalf("conn %d state %+v", i, got)
		}
	}

	if err := m.Delete(st.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatalf("connections not closed on delete")
	}
	if _, err := m.attach(st.ID, a); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestSocketMessages(t *testing.T) {
	s := newTestServer()
	st, err := s.Games().Create(game.Config{Depth: 1, Strict: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.handleMessage(st.ID, []byte(`{"type":"move","payload":{"move":"g1f3"}}`)); err != nil {
		t.Fatalf("move message: %v", err)
	}
	if err := s.handleMessage(st.ID, []byte(`{"type":"resign","payload":{}}`)); statusFor(err) != fiber.StatusBadRequest {
		t.Fatalf("unknown type: %v", err)
	}
	if err := s.handleMessage(st.ID, []byte(`{`)); statusFor(err) != fiber.StatusBadRequest {
		t.Fatalf("bad json: %v", err)
	}
	got, _ := s.Games().Get(st.ID)
	if len(got.History) != 2 || got.History[0] != "g1f3" {
		t.Fatalf("history %v", got.History)
	}
}
