package entity

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// Lines holds every index triple that wins the game: rows top-to-bottom,
// columns left-to-right, then both diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the content of a single cell.
type Mark string

// IsPlayer reports whether the mark belongs to one of the two players.
func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Board is a 3x3 grid in row-major order.
type Board [BoardSize]Mark

// IsValidCell reports whether cell addresses a square of the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// WinnerOf returns the mark holding a full line, or MarkEmpty.
func WinnerOf(board Board) Mark {
	line, ok := winningLine(board)
	if !ok {
		return MarkEmpty
	}

	return board[line[0]]
}

// WinningLine returns the first line in Lines held by a single mark.
// The result is empty when nobody has won.
func WinningLine(board Board) []int {
	line, ok := winningLine(board)
	if !ok {
		return []int{}
	}

	return []int{line[0], line[1], line[2]}
}

func winningLine(board Board) ([3]int, bool) {
	for _, line := range Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != MarkEmpty && a == b && b == c {
			return line, true
		}
	}

	return [3]int{}, false
}

// IsFull reports whether no empty cell is left.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == MarkEmpty {
			return false
		}
	}

	return true
}

// Place returns a copy of the board with cell set to mark.
func (that Board) Place(cell int, mark Mark) Board {
	next := that
	next[cell] = mark

	return next
}

// Diff returns the cells that differ between two boards.
func (that Board) Diff(other Board) []int {
	var cells []int
	for i := range that {
		if that[i] != other[i] {
			cells = append(cells, i)
		}
	}

	return cells
}
