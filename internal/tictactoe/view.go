package tictactoe

import "github.com/rocketscienceinc/tictactoe-web/internal/entity"

// View is everything a renderer needs to draw the session.
type View struct {
	Board       entity.Board `json:"board"`
	WinningLine []int        `json:"winning_line"`
	Status      string       `json:"status"`
	Winner      entity.Mark  `json:"winner,omitempty"`
	NextMark    entity.Mark  `json:"next_mark"`
	Players     Players      `json:"players"`
	Moves       []Move       `json:"moves"`
	Tally       []TallyRow   `json:"tally"`
}

type Players struct {
	X string `json:"x"`
	O string `json:"o"`
}

// Move is an entry of the move list. Selecting it jumps to Step.
type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current,omitempty"`
}

func (that *Engine) View() View {
	labels := that.MoveList()

	moves := make([]Move, len(labels))
	for step, label := range labels {
		moves[step] = Move{
			Step:    step,
			Label:   label,
			Current: step == that.step,
		}
	}

	return View{
		Board:       that.CurrentBoard(),
		WinningLine: that.WinningLine(),
		Status:      that.StatusText(),
		Winner:      that.Winner(),
		NextMark:    that.NextMark(),
		Players: Players{
			X: that.playerX,
			O: that.playerO,
		},
		Moves: moves,
		Tally: that.TallyRows(),
	}
}
