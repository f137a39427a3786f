package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"minchess/board"
	"minchess/game"
)

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func lastLog(m Model) string { return m.logLines[len(m.logLines)-1] }

func hasLog(m Model, s string) bool {
	for _, l := range m.logLines {
		if l == s {
			return true
		}
	}
	return false
}

func TestRenderBoardStartPosition(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	out := RenderBoard(pos)
	for _, want := range []string{
		"8 | r n b q k b n r |",
		"5 | . . . . . . . . |",
		"1 | R N B Q K B N R |",
		"    a b c d e f g h",
		"To move: White",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestChooseSideRejectsOtherKeys(t *testing.T) {
	m := NewModel(Config{Depth: 1})
	m, _ = press(t, m, runes("x"))
	if m.phase != phaseChooseSide || lastLog(m) != "please enter w or b" {
		t.Fatalf("phase %d, log %q", m.phase, lastLog(m))
	}
}

func TestChooseSideIgnoresCase(t *testing.T) {
	m, _ := press(t, NewModel(Config{Depth: 1}), runes("W"))
	if m.phase != phasePlaying || m.session == nil || m.session.Human() != board.White {
		t.Fatalf("upper-case W: phase %d", m.phase)
	}
	m, cmd := press(t, NewModel(Config{Depth: 1}), runes("B"))
	if m.phase != phaseThinking || cmd == nil || m.session.Human() != board.Black {
		t.Fatalf("upper-case B: phase %d", m.phase)
	}
}

func TestHumanMoveThenEngineReply(t *testing.T) {
	m := NewModel(Config{Depth: 1})
	m, _ = press(t, m, runes("w"))
	if m.phase != phasePlaying || m.session == nil {
		t.Fatalf("expected playing phase, got %d", m.phase)
	}

	m, _ = press(t, m, runes("zz"))
	m, _ = press(t, m, enter())
	if lastLog(m) != game.MoveHint {
		t.Fatalf("expected format hint, got %q", lastLog(m))
	}

	m, _ = press(t, m, runes("e2e4"))
	m, cmd := press(t, m, enter())
	if m.phase != phaseThinking || cmd == nil {
		t.Fatalf("expected engine search after the human move, phase %d", m.phase)
	}
	if !hasLog(m, "You played: e2e4") {
		t.Fatalf("human move not logged: %v", m.logLines)
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.phase != phasePlaying {
		t.Fatalf("expected the human's turn again, phase %d", m.phase)
	}
	if h := m.session.History(); len(h) != 2 || h[0] != "e2e4" {
		t.Fatalf("history %v", h)
	}
}

func TestEngineOpensForBlack(t *testing.T) {
	m := NewModel(Config{Depth: 1})
	m, cmd := press(t, m, runes("b"))
	if m.phase != phaseThinking || cmd == nil {
		t.Fatalf("engine should open, phase %d", m.phase)
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.phase != phasePlaying || len(m.session.History()) != 1 {
		t.Fatalf("phase %d history %v", m.phase, m.session.History())
	}
}

func TestGameOverMessage(t *testing.T) {
	m := NewModel(Config{FEN: "7k/8/8/8/8/8/BB6/KB6 w", Depth: 1})
	m, _ = press(t, m, runes("w"))
	if m.phase != phaseOver {
		t.Fatalf("expected game over, phase %d", m.phase)
	}
	if !hasLog(m, "Game over! Checkmate! Black wins!") {
		t.Fatalf("missing verdict: %v", m.logLines)
	}
	if _, cmd := press(t, m, runes("q")); cmd == nil {
		t.Fatalf("q should quit after the game")
	}
}
