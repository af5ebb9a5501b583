package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	DefaultPlayerX = "Player X"
	DefaultPlayerO = "Player O"
)

// Engine owns the state of one session: the board history, the step being
// viewed, the player names and the win tally.
//
// The zero value is not usable, create engines with New. An Engine is not safe
// for concurrent use.
type Engine struct {
	history []entity.Board
	step    int

	playerX string
	playerO string

	tally []TallyRow
}

// TallyRow is the number of wins of one mark.
type TallyRow struct {
	Mark entity.Mark `json:"mark"`
	Wins int         `json:"wins"`
}

// Option configures a new Engine.
type Option func(*Engine)

// WithPlayerNames overrides the default display names.
func WithPlayerNames(playerX, playerO string) Option {
	return func(that *Engine) {
		that.playerX = playerX
		that.playerO = playerO
	}
}

func New(opts ...Option) *Engine {
	engine := &Engine{
		history: []entity.Board{{}},
		playerX: DefaultPlayerX,
		playerO: DefaultPlayerO,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// SetPlayerName replaces the display name of a mark. Unknown marks are ignored.
func (that *Engine) SetPlayerName(mark entity.Mark, name string) {
	switch mark {
	case entity.MarkX:
		that.playerX = name
	case entity.MarkO:
		that.playerO = name
	}
}

// PlayerName returns the display name of a mark.
func (that *Engine) PlayerName(mark entity.Mark) string {
	if mark == entity.MarkO {
		return that.playerO
	}

	return that.playerX
}

// ApplyMove places the mark of the side to move on cell.
//
// Moving after a jump back discards every step after the current one. The call
// is a no-op and returns false when the current board is already won, the cell
// is taken or out of range.
func (that *Engine) ApplyMove(cell int) bool {
	current := that.CurrentBoard()

	if !entity.IsValidCell(cell) || entity.WinnerOf(current) != entity.MarkEmpty || current[cell] != entity.MarkEmpty {
		return false
	}

	next := current.Place(cell, that.NextMark())

	that.history = append(that.history[:that.step+1], next)
	that.step = len(that.history) - 1

	if winner := entity.WinnerOf(next); winner != entity.MarkEmpty {
		that.recordWin(winner)
	}

	return true
}

// JumpTo moves the step pointer. History is left as is until the next move.
// Returns false when step does not exist.
func (that *Engine) JumpTo(step int) bool {
	if step < 0 || step >= len(that.history) {
		return false
	}

	that.step = step

	return true
}

func (that *Engine) recordWin(winner entity.Mark) {
	for i := range that.tally {
		if that.tally[i].Mark == winner {
			that.tally[i].Wins++
			return
		}
	}

	that.tally = append(that.tally, TallyRow{Mark: winner, Wins: 1})
}

// XIsNext is derived from the step parity, X always opens.
func (that *Engine) XIsNext() bool {
	return that.step%2 == 0
}

// NextMark returns the mark placed by the next move.
func (that *Engine) NextMark() entity.Mark {
	if that.XIsNext() {
		return entity.MarkX
	}

	return entity.MarkO
}

func (that *Engine) Step() int {
	return that.step
}

func (that *Engine) HistoryLen() int {
	return len(that.history)
}

func (that *Engine) CurrentBoard() entity.Board {
	return that.history[that.step]
}

// Winner returns the winner of the board at the current step.
func (that *Engine) Winner() entity.Mark {
	return entity.WinnerOf(that.CurrentBoard())
}

// WinningLine returns the cells to highlight, empty while nobody has won.
func (that *Engine) WinningLine() []int {
	return entity.WinningLine(that.CurrentBoard())
}

// StatusText never reports a draw: a full board without a line keeps naming
// the next player.
func (that *Engine) StatusText() string {
	if winner := that.Winner(); winner != entity.MarkEmpty {
		return fmt.Sprintf("Winner: %s", winner)
	}

	return fmt.Sprintf("Next player: %s", that.PlayerName(that.NextMark()))
}

// MoveList returns one label per history entry.
func (that *Engine) MoveList() []string {
	moves := make([]string, len(that.history))
	for move := range that.history {
		moves[move] = moveLabel(move)
	}

	return moves
}

func moveLabel(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d", move)
}

// TallyRows returns the tally in the order marks first won.
func (that *Engine) TallyRows() []TallyRow {
	rows := make([]TallyRow, len(that.tally))
	copy(rows, that.tally)

	return rows
}
