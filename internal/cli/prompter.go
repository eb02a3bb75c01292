package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// Prompter - line-oriented prompting on a terminal pair. Every question is
// re-asked until the input parses; a failing input stream ends the dialogue
// with an error instead of spinning.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ReadCellNumber - asks until the input is a number between 1 and 3, and
// returns it zero-based.
func (that *Prompter) ReadCellNumber(prompt string) (int, error) {
	for {
		fmt.Fprintln(that.writer, prompt)
		fmt.Fprint(that.writer, "Enter a number [1-3]: ")

		line, readErr := that.reader.ReadString('\n')

		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && value >= 1 && value <= entity.GridSize {
			return value - 1, nil
		}

		if readErr != nil {
			return 0, fmt.Errorf("failed to read input: %w", readErr)
		}

		fmt.Fprintln(that.writer, "Invalid value")
	}
}

// ReadBool - asks a yes/no question. An empty line picks the default, which
// the prompt suffix advertises as the capital letter.
func (that *Prompter) ReadBool(prompt string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	for {
		fmt.Fprintf(that.writer, "%s %s: ", prompt, suffix)

		line, readErr := that.reader.ReadString('\n')

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			if readErr == nil {
				return defaultYes, nil
			}
		case "yes", "y", "1":
			return true, nil
		case "no", "n", "0":
			return false, nil
		}

		if readErr != nil {
			return false, fmt.Errorf("failed to read input: %w", readErr)
		}

		fmt.Fprintln(that.writer, "Invalid value")
	}
}

// Println - prints one feedback line on the prompting terminal.
func (that *Prompter) Println(message string) {
	fmt.Fprintln(that.writer, message)
}
