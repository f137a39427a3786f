package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minchess/board"
)

var (
	whiteStyle = lipgloss.NewStyle().Bold(true)
	blackStyle = lipgloss.NewStyle().Faint(true)
)

// RenderBoard draws the grid with rank 8 on top, framed, with file letters
// underneath and the side to move on the last line.
func RenderBoard(pos board.Position) string {
	var b strings.Builder
	b.WriteString("  +-----------------+\n")
	for r := 0; r < 8; r++ {
		b.WriteByte(byte('8' - r))
		b.WriteString(" | ")
		for c := 0; c < 8; c++ {
			b.WriteString(cell(pos.Grid[r][c]))
			b.WriteByte(' ')
		}
		b.WriteString("|\n")
	}
	b.WriteString("  +-----------------+\n")
	b.WriteString("    a b c d e f g h\n")
	b.WriteString("To move: " + sideName(pos.SideToMove))
	return b.String()
}

func cell(p board.Piece) string {
	s := string(p.Char())
	switch {
	case p.IsEmpty():
		return s
	case p.Color() == board.White:
		return whiteStyle.Render(s)
	default:
		return blackStyle.Render(s)
	}
}

func sideName(c board.Color) string {
	if c == board.White {
		return "White"
	}
	return "Black"
}
