package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

func TestBoard_HasWin(t *testing.T) {
	t.Run("Top row of X wins for X only", func(t *testing.T) {
		// Given: X on cells 0, 1, 2 and empty elsewhere
		board := Board{PlayerX, PlayerX, PlayerX}

		// Then: X has a win and O does not
		assert.True(t, board.HasWin(PlayerX))
		assert.False(t, board.HasWin(PlayerO))
	})

	t.Run("Every combo is detected", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: O on a single combo
			var board Board
			for _, cell := range combo {
				board[cell] = PlayerO
			}

			// Then: O wins, X does not
			assert.True(t, board.HasWin(PlayerO), "combo %v", combo)
			assert.False(t, board.HasWin(PlayerX), "combo %v", combo)
		}
	})

	t.Run("Two in a row is not a win", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerX, EmptyCell,
			PlayerO, PlayerO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		assert.False(t, board.HasWin(PlayerX))
		assert.False(t, board.HasWin(PlayerO))
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		var board Board

		assert.False(t, board.IsFull())
	})

	t.Run("One empty cell is not full", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, EmptyCell,
		}

		assert.False(t, board.IsFull())
	})

	t.Run("Any mix of marks on all cells is full", func(t *testing.T) {
		boards := []Board{
			{PlayerX, PlayerO, PlayerX, PlayerX, PlayerO, PlayerO, PlayerO, PlayerX, PlayerX},
			{PlayerX, PlayerX, PlayerX, PlayerX, PlayerX, PlayerX, PlayerX, PlayerX, PlayerX},
			{PlayerO, PlayerO, PlayerO, PlayerO, PlayerO, PlayerO, PlayerO, PlayerO, PlayerO},
		}

		for _, board := range boards {
			assert.True(t, board.IsFull(), "board %v", board)
		}
	})
}

func TestBoard_LegalMoves(t *testing.T) {
	t.Run("Empty board yields every index in order", func(t *testing.T) {
		var board Board

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, board.LegalMoves())
	})

	t.Run("Occupied cells are skipped", func(t *testing.T) {
		board := Board{
			PlayerX, EmptyCell, PlayerO,
			EmptyCell, PlayerX, EmptyCell,
			PlayerO, EmptyCell, EmptyCell,
		}

		assert.Equal(t, []int{1, 3, 5, 7, 8}, board.LegalMoves())
	})

	t.Run("Full board yields nothing", func(t *testing.T) {
		board := Board{PlayerX, PlayerO, PlayerX, PlayerX, PlayerO, PlayerO, PlayerO, PlayerX, PlayerX}

		assert.Empty(t, board.LegalMoves())
	})
}

func TestBoard_Result(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Mark
	}{
		{
			name:  "Ongoing on empty board",
			board: Board{},
			want:  EmptyCell,
		},
		{
			name: "X wins on a column",
			board: Board{
				PlayerX, PlayerO, EmptyCell,
				PlayerX, PlayerO, EmptyCell,
				PlayerX, EmptyCell, EmptyCell,
			},
			want: PlayerX,
		},
		{
			name: "O wins on the anti-diagonal",
			board: Board{
				PlayerX, PlayerX, PlayerO,
				EmptyCell, PlayerO, EmptyCell,
				PlayerO, EmptyCell, PlayerX,
			},
			want: PlayerO,
		},
		{
			name: "Tie on a full board",
			board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerO, PlayerX, PlayerO,
				PlayerO, PlayerX, PlayerO,
			},
			want: PlayerTie,
		},
		{
			name: "Win on the last cell is not a tie",
			board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerO, PlayerX, PlayerO,
				PlayerO, PlayerO, PlayerX,
			},
			want: PlayerX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Result())
			assert.Equal(t, tt.want != EmptyCell, tt.board.IsTerminal())
		})
	}
}

func TestBoard_WinningLines(t *testing.T) {
	// Given: X completes both the top row and the left column
	board := Board{
		PlayerX, PlayerX, PlayerX,
		PlayerX, PlayerO, PlayerO,
		PlayerX, PlayerO, PlayerO,
	}

	// When: asking for X lines
	lines := board.WinningLines(PlayerX)

	// Then: both lines are reported in combo order
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 3, 6}}, lines)
	assert.Empty(t, board.WinningLines(PlayerO))
}

func TestMarks(t *testing.T) {
	t.Run("NewMarks gives the bot the other mark", func(t *testing.T) {
		marks, err := NewMarks(PlayerO)

		require.NoError(t, err)
		assert.Equal(t, Marks{Human: PlayerO, Bot: PlayerX}, marks)
		assert.Equal(t, PlayerO, marks.Of(TurnPlayer))
		assert.Equal(t, PlayerX, marks.Of(TurnBot))
		assert.Equal(t, EmptyCell, marks.Of(""))
	})

	t.Run("NewMarks rejects a non player mark", func(t *testing.T) {
		_, err := NewMarks(PlayerTie)

		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Validate rejects shared marks", func(t *testing.T) {
		err := Marks{Human: PlayerX, Bot: PlayerX}.Validate()

		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Validate rejects empty marks", func(t *testing.T) {
		err := Marks{Human: PlayerX}.Validate()

		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestParse(t *testing.T) {
	t.Run("ParseMark is case insensitive", func(t *testing.T) {
		mark, err := ParseMark(" o ")

		require.NoError(t, err)
		assert.Equal(t, PlayerO, mark)
	})

	t.Run("ParseMark rejects garbage", func(t *testing.T) {
		_, err := ParseMark("Z")

		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("ParseCell accepts empty cells", func(t *testing.T) {
		mark, err := ParseCell("")

		require.NoError(t, err)
		assert.Equal(t, EmptyCell, mark)
	})

	t.Run("ParseStarter", func(t *testing.T) {
		starter, err := ParseStarter("BOT")
		require.NoError(t, err)
		assert.Equal(t, TurnBot, starter)

		_, err = ParseStarter("nobody")
		assert.ErrorIs(t, err, apperror.ErrInvalidStarter)
	})
}
