package entity

// Mark is the content of a board cell: one of the two player symbols or EmptyCell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const BoardSize = 9

// WinCombos are the rows, columns and diagonals of the 3x3 grid.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major, indexes 0..8.
type Board [BoardSize]Mark

// IsFull reports whether no cell is empty.
func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// HasWin reports whether any win combo is fully occupied by mark.
func (that *Board) HasWin(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

// LegalMoves returns the empty cell indexes in ascending order.
func (that *Board) LegalMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

// WinningLines returns every combo completed by mark.
func (that *Board) WinningLines(mark Mark) [][3]int {
	var lines [][3]int
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			lines = append(lines, combo)
		}
	}

	return lines
}

// Result classifies the board: the winning mark, PlayerTie for a full board
// without a winner, or EmptyCell while the game can go on.
func (that *Board) Result() Mark {
	switch {
	case that.HasWin(PlayerX):
		return PlayerX
	case that.HasWin(PlayerO):
		return PlayerO
	case that.IsFull():
		return PlayerTie
	default:
		return EmptyCell
	}
}

func (that *Board) IsTerminal() bool {
	return that.Result() != EmptyCell
}
