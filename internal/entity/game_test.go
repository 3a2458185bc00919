package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

var testMarks = Marks{Human: PlayerX, Bot: PlayerO}

func TestNewGame(t *testing.T) {
	// When: a new game is created with the bot starting
	game := NewGame("123", testMarks, TurnBot)

	// Then: the game is ongoing with an empty board
	expectedGame := &Game{
		ID:     "123",
		Board:  Board{},
		Marks:  testMarks,
		Turn:   TurnBot,
		Status: StatusOngoing,
	}

	require.Equal(t, expectedGame, game)
	assert.True(t, game.IsBotTurn())
	assert.Equal(t, PlayerO, game.CurrentMark())
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.True(t, game.IsOngoing())
		assert.False(t, game.IsFinished())
	})

	t.Run("IsBotTurn is false once finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished, Turn: TurnBot}

		assert.False(t, game.IsBotTurn())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: a new game where the player starts
		game := NewGame("123", testMarks, TurnPlayer)

		// When: the player places X on cell 0
		err := game.MakeTurn(PlayerX, 0)
		require.NoError(t, err)

		// Then: the board holds the mark and the turn goes to the bot
		expectedGame := &Game{
			ID:     "123",
			Board:  Board{PlayerX},
			Marks:  testMarks,
			Turn:   TurnBot,
			Status: StatusOngoing,
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: cell 0 is taken by the player
		game := NewGame("123", testMarks, TurnPlayer)
		require.NoError(t, game.MakeTurn(PlayerX, 0))

		// When: the bot tries the same cell
		err := game.MakeTurn(PlayerO, 0)

		// Then: ErrCellOccupied is returned and the turn does not move
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, TurnBot, game.Turn)
		assert.Equal(t, Board{PlayerX}, game.Board)
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		// Given: a new game where the player starts
		game := NewGame("123", testMarks, TurnPlayer)

		// When: the bot mark is played
		err := game.MakeTurn(PlayerO, 1)

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, game.Board)
	})

	t.Run("Error on Invalid Cell Index", func(t *testing.T) {
		game := NewGame("123", testMarks, TurnPlayer)

		assert.ErrorIs(t, game.MakeTurn(PlayerX, 9), ErrInvalidCell)
		assert.ErrorIs(t, game.MakeTurn(PlayerX, -1), ErrInvalidCell)
	})

	t.Run("Winning turn finishes the game", func(t *testing.T) {
		// Given: the player holds cells 0 and 1, the bot holds 3 and 4
		game := NewGame("123", testMarks, TurnPlayer)
		game.Board = Board{
			PlayerX, PlayerX, EmptyCell,
			PlayerO, PlayerO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// When: the player completes the top row
		err := game.MakeTurn(PlayerX, 2)
		require.NoError(t, err)

		// Then: the game is finished with the row reported
		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, TurnPlayer, game.WinnerSide())
		assert.Equal(t, []int{0, 1, 2}, game.WinLine)
		assert.Empty(t, game.Turn)

		// And: further turns are rejected
		assert.ErrorIs(t, game.MakeTurn(PlayerO, 5), apperror.ErrGameFinished)
	})

	t.Run("Last cell without a line is a tie", func(t *testing.T) {
		game := NewGame("123", testMarks, TurnBot)
		game.Board = Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, EmptyCell,
		}

		// When: the bot fills the last cell
		err := game.MakeTurn(PlayerO, 8)
		require.NoError(t, err)

		// Then: the game is a tie
		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerTie, game.Winner)
		assert.Equal(t, string(PlayerTie), game.WinnerSide())
		assert.Empty(t, game.WinLine)
	})
}

func TestGame_Clone(t *testing.T) {
	// Given: a finished game with a win line
	game := &Game{ID: "1", WinLine: []int{0, 1, 2}, Status: StatusFinished}

	// When: the clone is modified
	clone := game.Clone()
	clone.WinLine[0] = 8
	clone.Board[0] = PlayerX

	// Then: the original is untouched
	assert.Equal(t, []int{0, 1, 2}, game.WinLine)
	assert.Equal(t, EmptyCell, game.Board[0])
}

func TestGame_ResultText(t *testing.T) {
	tests := []struct {
		name   string
		winner Mark
		want   string
	}{
		{name: "Player wins", winner: PlayerX, want: "You Win!"},
		{name: "Bot wins", winner: PlayerO, want: "Bot Wins!"},
		{name: "Draw", winner: PlayerTie, want: "It's a Draw!"},
		{name: "Ongoing", winner: EmptyCell, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &Game{Marks: testMarks, Winner: tt.winner}

			assert.Equal(t, tt.want, game.ResultText())
		})
	}
}
