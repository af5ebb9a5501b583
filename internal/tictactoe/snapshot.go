package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

var ErrCorruptSnapshot = errors.New("corrupt game snapshot")

// Snapshot is the stored form of an Engine.
type Snapshot struct {
	History []entity.Board `json:"history"`
	Step    int            `json:"step"`
	PlayerX string         `json:"player_x"`
	PlayerO string         `json:"player_o"`
	Tally   []TallyRow     `json:"tally,omitempty"`
}

// Snapshot returns a copy of the engine state that shares no memory with it.
func (that *Engine) Snapshot() Snapshot {
	history := make([]entity.Board, len(that.history))
	copy(history, that.history)

	return Snapshot{
		History: history,
		Step:    that.step,
		PlayerX: that.playerX,
		PlayerO: that.playerO,
		Tally:   that.TallyRows(),
	}
}

// Restore rebuilds an engine from a snapshot after checking that the history
// could have been produced by alternating moves from an empty board.
func Restore(snapshot Snapshot) (*Engine, error) {
	if err := validate(snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	history := make([]entity.Board, len(snapshot.History))
	copy(history, snapshot.History)

	tally := make([]TallyRow, len(snapshot.Tally))
	copy(tally, snapshot.Tally)

	return &Engine{
		history: history,
		step:    snapshot.Step,
		playerX: snapshot.PlayerX,
		playerO: snapshot.PlayerO,
		tally:   tally,
	}, nil
}

func validate(snapshot Snapshot) error {
	if len(snapshot.History) == 0 {
		return errors.New("empty history")
	}

	if snapshot.History[0] != (entity.Board{}) {
		return errors.New("history does not start with an empty board")
	}

	if snapshot.Step < 0 || snapshot.Step >= len(snapshot.History) {
		return fmt.Errorf("step %d out of range [0, %d)", snapshot.Step, len(snapshot.History))
	}

	for i := 1; i < len(snapshot.History); i++ {
		prev, next := snapshot.History[i-1], snapshot.History[i]

		if entity.WinnerOf(prev) != entity.MarkEmpty {
			return fmt.Errorf("move %d played after a win", i)
		}

		diff := prev.Diff(next)
		if len(diff) != 1 {
			return fmt.Errorf("move %d changes %d cells", i, len(diff))
		}

		cell := diff[0]
		expected := entity.MarkX
		if i%2 == 0 {
			expected = entity.MarkO
		}

		if prev[cell] != entity.MarkEmpty || next[cell] != expected {
			return fmt.Errorf("move %d places %q on cell %d", i, next[cell], cell)
		}
	}

	seen := make(map[entity.Mark]bool, len(snapshot.Tally))
	for _, row := range snapshot.Tally {
		if !row.Mark.IsPlayer() || row.Wins < 1 || seen[row.Mark] {
			return fmt.Errorf("invalid tally row %s:%d", row.Mark, row.Wins)
		}
		seen[row.Mark] = true
	}

	return nil
}
