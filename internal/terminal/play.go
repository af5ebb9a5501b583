package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const help = `commands:
  0-8         place the next mark on a cell
  j <step>    jump to a step of the move list
  x <name>    rename player X
  o <name>    rename player O
  q           quit
`

// Play runs a game on engine, reading one command per line from in until in
// is exhausted, q is entered or ctx is done. The view is redrawn on out after
// every understood command.
func Play(ctx context.Context, in io.Reader, out io.Writer, engine *tictactoe.Engine, opts ...termenv.OutputOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := NewRenderer(out, opts...)

	if err := renderer.Render(engine.View()); err != nil {
		return err
	}

	lines, readErr := readLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}

			// both cases may be ready at once
			if ctx.Err() != nil {
				return nil
			}

			if line == "q" {
				return nil
			}

			if !execute(engine, line) {
				if _, err := io.WriteString(out, help); err != nil {
					return fmt.Errorf("failed to write help: %w", err)
				}
				continue
			}

			if err := renderer.Render(engine.View()); err != nil {
				return err
			}
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The goroutine stays blocked on in until the next line or EOF.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}

		if err := scanner.Err(); err != nil {
			readErr <- fmt.Errorf("failed to read command: %w", err)
			return
		}

		readErr <- nil
	}()

	return lines, readErr
}

// execute applies one command. It returns false when the command is not
// understood. Moves the engine ignores are still valid commands.
func execute(engine *tictactoe.Engine, line string) bool {
	command, arg, _ := strings.Cut(line, " ")

	switch command {
	case "x":
		engine.SetPlayerName(entity.MarkX, strings.TrimSpace(arg))
		return true
	case "o":
		engine.SetPlayerName(entity.MarkO, strings.TrimSpace(arg))
		return true
	case "j":
		step, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || step < 0 || step >= engine.HistoryLen() {
			return false
		}
		engine.JumpTo(step)
		return true
	}

	cell, err := strconv.Atoi(command)
	if err != nil || arg != "" || !entity.IsValidCell(cell) {
		return false
	}

	engine.ApplyMove(cell)

	return true
}
