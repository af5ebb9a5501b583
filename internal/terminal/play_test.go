package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

func TestPlay(t *testing.T) {
	t.Run("Applies commands until quit", func(t *testing.T) {
		// Given: a command script that stops before the last move
		in := strings.NewReader("4\n0\nj 1\nx Alice\no Bob\nq\n8\n")
		var out bytes.Buffer
		engine := tictactoe.New()

		// When: the script is played
		err := Play(context.Background(), in, &out, engine, termenv.WithProfile(termenv.Ascii))

		// Then: the engine is back on the first move with renamed players
		require.NoError(t, err)
		assert.Equal(t, 3, engine.HistoryLen())
		assert.Equal(t, 1, engine.Step())
		assert.Equal(t, "Alice", engine.PlayerName(entity.MarkX))
		assert.Equal(t, "Bob", engine.PlayerName(entity.MarkO))
		assert.Contains(t, out.String(), "Next player: Bob")
	})

	t.Run("Prints help for commands it does not understand", func(t *testing.T) {
		// Given: unknown and out of range commands
		in := strings.NewReader("hello\n9\nj 5\n4 4\n")
		var out bytes.Buffer
		engine := tictactoe.New()

		// When: the script is played
		err := Play(context.Background(), in, &out, engine, termenv.WithProfile(termenv.Ascii))

		// Then: nothing is applied and help is printed for each line
		require.NoError(t, err)
		assert.Equal(t, 1, engine.HistoryLen())
		assert.Equal(t, 4, strings.Count(out.String(), "commands:"))
	})

	t.Run("Keeps going after a move the engine ignores", func(t *testing.T) {
		// Given: a move on an occupied cell
		in := strings.NewReader("4\n4\n0\n")
		var out bytes.Buffer
		engine := tictactoe.New()

		// When: the script is played
		err := Play(context.Background(), in, &out, engine, termenv.WithProfile(termenv.Ascii))

		// Then: the occupied cell is skipped and O plays the next move
		require.NoError(t, err)
		assert.Equal(t, entity.MarkO, engine.CurrentBoard()[0])
		assert.NotContains(t, out.String(), "commands:")
	})

	t.Run("Stops when the context is done", func(t *testing.T) {
		// Given: a cancelled context
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		engine := tictactoe.New()

		// When: a move is sent
		err := Play(ctx, strings.NewReader("4\n"), &bytes.Buffer{}, engine, termenv.WithProfile(termenv.Ascii))

		// Then: the move is not played
		require.NoError(t, err)
		assert.Equal(t, 1, engine.HistoryLen())
	})

	t.Run("Returns on cancel while waiting for input", func(t *testing.T) {
		// Given: an input that never delivers a line
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- Play(ctx, reader, io.Discard, tictactoe.New(), termenv.WithProfile(termenv.Ascii))
		}()

		// When: the context is cancelled while Play waits for a command
		time.Sleep(50 * time.Millisecond)
		cancel()

		// Then: Play returns without waiting for the input
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Play did not return after the context was cancelled")
		}
	})
}
