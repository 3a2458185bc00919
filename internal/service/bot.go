package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/minimax"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrNotBotTurn       = errors.New("not the bot's turn")
)

type BotService interface {
	MakeTurn(game *entity.Game) (minimax.Move, error)
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger,
	}
}

// MakeTurn applies the minimax move of the bot to game.
func (that *botService) MakeTurn(game *entity.Game) (minimax.Move, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if game.IsFinished() || game.Board.IsTerminal() {
		return minimax.Move{Index: minimax.NoMove}, ErrNoAvailableMoves
	}

	if !game.IsBotTurn() {
		return minimax.Move{Index: minimax.NoMove}, ErrNotBotTurn
	}

	// search on a copy so the stored board is never touched mid-search
	board := game.Board
	move := minimax.Search(&board, game.Marks)
	if move.Index == minimax.NoMove {
		return move, ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.Marks.Bot, move.Index); err != nil {
		return move, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot moved", "cell", move.Index, "score", move.Score, "status", game.Status)

	return move, nil
}
