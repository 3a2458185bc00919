package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

// Game is one human-versus-bot session.
type Game struct {
	ID      string `json:"id"`
	Board   Board  `json:"board"`
	Marks   Marks  `json:"marks"`
	Turn    string `json:"turn"`
	Winner  Mark   `json:"winner"`
	WinLine []int  `json:"win_line,omitempty"`
	Status  string `json:"status"`
}

func NewGame(id string, marks Marks, starter string) *Game {
	return &Game{
		ID:     id,
		Board:  Board{},
		Marks:  marks,
		Turn:   starter,
		Status: StatusOngoing,
	}
}

// MakeTurn places mark on cell for the side whose turn it is.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.CurrentMark() != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark

	if that.Turn == TurnPlayer {
		that.Turn = TurnBot
	} else {
		that.Turn = TurnPlayer
	}

	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Result(); winner {
	// one side completed a line
	case PlayerX, PlayerO:
		that.Winner = winner
		that.WinLine = flattenLines(that.Board.WinningLines(winner))
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

// CurrentMark is the mark expected on the next move, or EmptyCell once finished.
func (that *Game) CurrentMark() Mark {
	return that.Marks.Of(that.Turn)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == TurnBot
}

// WinnerSide maps the winning mark back to TurnPlayer or TurnBot; PlayerTie for a draw.
func (that *Game) WinnerSide() string {
	switch that.Winner {
	case EmptyCell:
		return ""
	case PlayerTie:
		return string(PlayerTie)
	case that.Marks.Human:
		return TurnPlayer
	default:
		return TurnBot
	}
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Clone returns a deep copy.
func (that *Game) Clone() *Game {
	clone := *that
	if that.WinLine != nil {
		clone.WinLine = append([]int(nil), that.WinLine...)
	}

	return &clone
}

func flattenLines(lines [][3]int) []int {
	seen := make(map[int]bool, BoardSize)
	cells := make([]int, 0, len(lines)*3)
	for _, line := range lines {
		for _, cell := range line {
			if !seen[cell] {
				seen[cell] = true
				cells = append(cells, cell)
			}
		}
	}

	return cells
}

// ResultText is the end of game line shown to the human, empty while the game goes on.
func (that *Game) ResultText() string {
	switch that.WinnerSide() {
	case TurnPlayer:
		return "You Win!"
	case TurnBot:
		return "Bot Wins!"
	case string(PlayerTie):
		return "It's a Draw!"
	default:
		return ""
	}
}
