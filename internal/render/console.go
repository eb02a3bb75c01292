package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// Board styles understood by the console renderer.
const (
	StyleASCII   = "ascii"
	StyleUnicode = "unicode"
)

const (
	xColor = "1" // ANSI red
	oColor = "4" // ANSI blue
)

// Console - draws the game on a terminal writer, in one of two board styles,
// coloring the marks when the terminal supports it.
type Console struct {
	writer  io.Writer
	style   string
	profile termenv.Profile
}

// NewConsole - builds a console view on writer. With color disabled the
// profile is forced to plain ASCII, which renders no escape sequences at all.
func NewConsole(writer io.Writer, style string, colored bool) *Console {
	profile := termenv.Ascii
	if colored {
		profile = termenv.ColorProfile()
	}

	return &Console{
		writer:  writer,
		style:   style,
		profile: profile,
	}
}

func (that *Console) ShowGrid(grid *entity.Grid) {
	if that.style == StyleUnicode {
		fmt.Fprint(that.writer, that.unicodeGrid(grid))
		return
	}

	fmt.Fprint(that.writer, that.asciiGrid(grid))
}

func (that *Console) ShowTurn(mark entity.Mark) {
	fmt.Fprintf(that.writer, "--- %s's turn ---\n", that.paint(mark))
}

func (that *Console) ShowInvalidMove(_ entity.Move, err error) {
	fmt.Fprintf(that.writer, "Invalid move: %v\n", err)
}

func (that *Console) ShowOutcome(result string) {
	if result == entity.PlayerTie {
		fmt.Fprintln(that.writer, "It's a tie!")
		return
	}

	fmt.Fprintf(that.writer, "%s wins!\n", that.paint(entity.Mark(result)))
}

func (that *Console) paint(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return that.profile.String(string(mark)).Foreground(that.profile.Color(xColor)).String()
	case entity.PlayerO:
		return that.profile.String(string(mark)).Foreground(that.profile.Color(oColor)).String()
	default:
		return " "
	}
}

// asciiGrid - dash rules between pipe-separated cells, the layout terminals
// have drawn tic-tac-toe in forever.
func (that *Console) asciiGrid(grid *entity.Grid) string {
	rule := strings.Repeat("-", 1+entity.GridSize*4)

	var sb strings.Builder

	sb.WriteString(rule + "\n")

	for _, row := range grid.Rows() {
		sb.WriteString("|")
		for _, cell := range row {
			sb.WriteString(" " + that.paint(cell) + " |")
		}
		sb.WriteString("\n" + rule + "\n")
	}

	return sb.String()
}

// unicodeGrid - the box-drawing variant of the same layout.
func (that *Console) unicodeGrid(grid *entity.Grid) string {
	var sb strings.Builder

	sb.WriteString("┌───┬───┬───┐\n")

	rows := grid.Rows()
	for i, row := range rows {
		sb.WriteString("│")
		for _, cell := range row {
			sb.WriteString(" " + that.paint(cell) + " │")
		}
		sb.WriteString("\n")

		if i < len(rows)-1 {
			sb.WriteString("├───┼───┼───┤\n")
		}
	}

	sb.WriteString("└───┴───┴───┘\n")

	return sb.String()
}
