// Package tui is a terminal game against the engine.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"minchess/board"
	"minchess/game"
)

// Config sets up the games played in the terminal.
type Config struct {
	FEN    string
	Depth  int
	Strict bool
	Log    zerolog.Logger
}

type phase int

const (
	phaseChooseSide phase = iota
	phasePlaying
	phaseThinking
	phaseOver
)

// engineMovedMsg carries the result of a background engine search.
type engineMovedMsg struct {
	move board.Move
	err  error
}

const maxLogLines = 200

type Model struct {
	cfg     Config
	phase   phase
	session *game.Session

	input    textinput.Model
	logLines []string

	width  int
	height int
}

func NewModel(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "e2e4"
	ti.Prompt = "Your move: "
	ti.CharLimit = 16
	ti.Width = 20

	return Model{
		cfg:      cfg,
		phase:    phaseChooseSide,
		input:    ti,
		logLines: []string{"White or Black? (w/b)"},
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case engineMovedMsg:
		err := msg.err
		if err == nil {
			err = m.session.PlayReply(msg.move)
		}
		if err != nil {
			m.appendLog(fmt.Sprintf("engine failed: %v", err))
			m.phase = phaseOver
			return m, nil
		}
		m.appendLog("Engine played: " + msg.move.String())
		return m.afterMove()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseChooseSide:
			return m.chooseSide(msg.String())
		case phasePlaying:
			if msg.Type == tea.KeyEnter {
				return m.submit()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		case phaseOver:
			switch msg.String() {
			case "q", "esc", "enter":
				return m, tea.Quit
			}
		case phaseThinking:
		}
	}
	return m, nil
}

func (m Model) chooseSide(key string) (tea.Model, tea.Cmd) {
	key = strings.ToLower(key)
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "w", "b":
	default:
		m.appendLog("please enter w or b")
		return m, nil
	}

	human, _ := board.ParseColor(key)
	s, err := game.New(game.Config{
		FEN:    m.cfg.FEN,
		Human:  human,
		Depth:  m.cfg.Depth,
		Strict: m.cfg.Strict,
		Log:    m.cfg.Log,
	})
	if err != nil {
		m.appendLog(fmt.Sprintf("cannot start game: %v", err))
		m.phase = phaseOver
		return m, nil
	}
	m.session = s
	m.appendLog("You play " + sideName(human) + ".")
	return m.afterMove()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.ToLower(strings.TrimSpace(m.input.Value()))
	m.input.SetValue("")
	if text == "" {
		return m, nil
	}

	err := m.session.PlayHuman(text)
	switch {
	case err == nil:
		m.appendLog("You played: " + text)
		return m.afterMove()
	case errors.Is(err, board.ErrInvalidMoveText):
		m.appendLog(game.MoveHint)
	default:
		m.appendLog(err.Error())
	}
	return m, nil
}

// afterMove decides what happens next: game over, the human's turn, or a
// background search for the engine's reply.
func (m Model) afterMove() (tea.Model, tea.Cmd) {
	if m.session.Status() != game.Ongoing {
		m.appendLog("Game over! " + m.session.Verdict())
		m.appendLog("press q to quit")
		m.phase = phaseOver
		m.input.Blur()
		return m, nil
	}
	if m.session.HumanToMove() {
		m.phase = phasePlaying
		m.appendLog("Your move!")
		return m, m.input.Focus()
	}

	m.phase = phaseThinking
	m.input.Blur()
	m.appendLog("Engine is thinking...")
	s := m.session
	return m, func() tea.Msg {
		mv, err := s.SearchReply()
		return engineMovedMsg{move: mv, err: err}
	}
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	header := titleStyle.Render("minchess")

	boardView := "(no game yet)"
	if m.session != nil {
		boardView = RenderBoard(m.session.Position())
	}
	boardBox := boxStyle.Render(boardView)

	logHeight := max(5, m.height-18)
	logStart := max(0, len(m.logLines)-logHeight)
	logBox := boxStyle.Width(max(30, m.width-2)).Render(strings.Join(m.logLines[logStart:], "\n"))

	var inputLine string
	switch m.phase {
	case phasePlaying:
		inputLine = m.input.View()
	case phaseThinking:
		inputLine = "engine is thinking..."
	case phaseOver:
		inputLine = "press q to quit"
	default:
		inputLine = "press w or b"
	}
	inputBox := boxStyle.Width(max(30, m.width-2)).Render(inputLine)

	return lipgloss.JoinVertical(lipgloss.Left, header, boardBox, logBox, inputBox) + "\n"
}
