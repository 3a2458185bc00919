package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Who moves in a game.
const (
	TurnPlayer = "player"
	TurnBot    = "bot"
)

// Marks binds one mark to the human and the other to the bot for a whole game.
type Marks struct {
	Human Mark `json:"player"`
	Bot   Mark `json:"bot"`
}

// NewMarks gives the human the requested mark and the bot the other one.
func NewMarks(human Mark) (Marks, error) {
	if !isPlayerMark(human) {
		return Marks{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, human)
	}

	return Marks{Human: human, Bot: Opponent(human)}, nil
}

func (that Marks) Validate() error {
	if !isPlayerMark(that.Human) || !isPlayerMark(that.Bot) {
		return fmt.Errorf("%w: player %q, bot %q", apperror.ErrInvalidMark, that.Human, that.Bot)
	}

	if that.Human == that.Bot {
		return fmt.Errorf("%w: player and bot share %q", apperror.ErrInvalidMark, that.Human)
	}

	return nil
}

// Of returns the mark held by the given side (TurnPlayer or TurnBot).
func (that Marks) Of(side string) Mark {
	switch side {
	case TurnPlayer:
		return that.Human
	case TurnBot:
		return that.Bot
	default:
		return EmptyCell
	}
}

func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// ParseMark accepts "x"/"o" in any case.
func ParseMark(value string) (Mark, error) {
	mark := Mark(strings.ToUpper(strings.TrimSpace(value)))
	if !isPlayerMark(mark) {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}

	return mark, nil
}

// ParseCell accepts a board cell as sent by a client: a player mark or an empty string.
func ParseCell(value string) (Mark, error) {
	if strings.TrimSpace(value) == "" {
		return EmptyCell, nil
	}

	return ParseMark(value)
}

func ParseStarter(value string) (string, error) {
	starter := strings.ToLower(strings.TrimSpace(value))
	if starter != TurnPlayer && starter != TurnBot {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidStarter, value)
	}

	return starter, nil
}

func isPlayerMark(mark Mark) bool {
	return mark == PlayerX || mark == PlayerO
}
