package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = MarkX
	o = MarkO
	e = MarkEmpty
)

func TestWinnerOf(t *testing.T) {
	t.Run("Returns the mark for every winning line", func(t *testing.T) {
		for _, mark := range []Mark{MarkX, MarkO} {
			for _, line := range Lines {
				// Given: a board where only one line is filled with the mark
				var board Board
				for _, cell := range line {
					board[cell] = mark
				}

				// When: determining the winner
				winner := WinnerOf(board)

				// Then: the mark should win and the line should be reported
				assert.Equal(t, mark, winner)
				assert.Equal(t, []int{line[0], line[1], line[2]}, WinningLine(board))
			}
		}
	})

	t.Run("Returns MarkEmpty on an empty board", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: determining the winner
		winner := WinnerOf(board)

		// Then: nobody should win
		assert.Equal(t, MarkEmpty, winner)
		assert.Empty(t, WinningLine(board))
	})

	t.Run("Returns MarkEmpty on a full board without a line", func(t *testing.T) {
		// Given: a drawn board
		board := Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		// When: determining the winner
		winner := WinnerOf(board)

		// Then: nobody should win
		assert.Equal(t, MarkEmpty, winner)
		assert.Empty(t, WinningLine(board))
		assert.True(t, board.IsFull())
	})

	t.Run("Mixed marks on a line do not win", func(t *testing.T) {
		// Given: a top row with two different marks
		board := Board{
			x, x, o,
			e, e, e,
			e, e, e,
		}

		// When: determining the winner
		winner := WinnerOf(board)

		// Then: nobody should win
		assert.Equal(t, MarkEmpty, winner)
	})
}

func TestWinningLine(t *testing.T) {
	t.Run("Returns the first line in table order", func(t *testing.T) {
		// Given: X holds both the top row and the left column
		board := Board{
			x, x, x,
			x, o, o,
			x, o, o,
		}

		// When: looking up the winning line
		line := WinningLine(board)

		// Then: the row is found before the column
		require.Len(t, line, 3)
		assert.Equal(t, []int{0, 1, 2}, line)
		assert.Equal(t, MarkX, WinnerOf(board))
	})
}

func TestBoard_Place(t *testing.T) {
	// Given: an empty board
	var board Board

	// When: placing X in the center
	next := board.Place(4, MarkX)

	// Then: only the copy should change
	assert.Equal(t, MarkEmpty, board[4])
	assert.Equal(t, MarkX, next[4])
	assert.Equal(t, []int{4}, board.Diff(next))
}

func TestIsValidCell(t *testing.T) {
	assert.True(t, IsValidCell(0))
	assert.True(t, IsValidCell(8))
	assert.False(t, IsValidCell(-1))
	assert.False(t, IsValidCell(9))
}

func TestMark_IsPlayer(t *testing.T) {
	assert.True(t, MarkX.IsPlayer())
	assert.True(t, MarkO.IsPlayer())
	assert.False(t, MarkEmpty.IsPlayer())
	assert.False(t, Mark("Y").IsPlayer())
}
