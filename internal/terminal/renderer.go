// Package terminal draws a game on a terminal and lets two people play it
// from the keyboard.
package terminal

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	colorX = "9"  // bright red
	colorO = "12" // bright blue
)

type Renderer struct {
	out *termenv.Output
}

// NewRenderer writes to w. The color profile is detected from w unless one
// is passed with termenv.WithProfile.
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Render draws the board with the winning line highlighted, followed by the
// status, the move list and the tally.
func (that *Renderer) Render(view tictactoe.View) error {
	var b strings.Builder

	that.writeBoard(&b, view.Board, view.WinningLine)

	b.WriteString("\n")
	b.WriteString(that.out.String(view.Status).Bold().String())
	b.WriteString("\n\nMoves:\n")

	for _, move := range view.Moves {
		marker := " "
		if move.Current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %2d  %s\n", marker, move.Step, move.Label)
	}

	b.WriteString("\nLeague Table\n")
	fmt.Fprintf(&b, "%-8s%s\n", "Player", "Wins")
	for _, row := range view.Tally {
		fmt.Fprintf(&b, "%-8s%d\n", row.Mark, row.Wins)
	}

	if _, err := io.WriteString(that.out, b.String()); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}

	return nil
}

func (that *Renderer) writeBoard(b *strings.Builder, board entity.Board, winningLine []int) {
	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}

		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			cells[col] = that.cell(cell, board[cell], slices.Contains(winningLine, cell))
		}

		b.WriteString(strings.Join(cells, "|"))
		b.WriteString("\n")
	}
}

func (that *Renderer) cell(index int, mark entity.Mark, winning bool) string {
	text := " " + strconv.Itoa(index) + " "
	if mark != entity.MarkEmpty {
		text = " " + string(mark) + " "
	}

	style := that.out.String(text)

	switch mark {
	case entity.MarkX:
		style = style.Foreground(that.out.Color(colorX)).Bold()
	case entity.MarkO:
		style = style.Foreground(that.out.Color(colorO)).Bold()
	default:
		style = style.Faint()
	}

	if winning {
		style = style.Reverse()
	}

	return style.String()
}
