package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/minimax"
)

type GameUseCase interface {
	StartGame(ctx context.Context, humanMark entity.Mark, starter string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, gameID string) (*entity.Game, error)
}

type gameService interface {
	CreateGame(ctx context.Context, marks entity.Marks, starter string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (minimax.Move, error)
}

type gameUseCase struct {
	logger *slog.Logger

	gameService gameService
	botService  botService
}

func NewGameUseCase(logger *slog.Logger, gameService gameService, botService botService) GameUseCase {
	return &gameUseCase{
		logger: logger,

		gameService: gameService,
		botService:  botService,
	}
}

// StartGame creates a session; when the bot starts, its opening move is left to BotTurn.
func (that *gameUseCase) StartGame(ctx context.Context, humanMark entity.Mark, starter string) (*entity.Game, error) {
	marks, err := entity.NewMarks(humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to assign marks: %w", err)
	}

	game, err := that.gameService.CreateGame(ctx, marks, starter)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game started", "method", "StartGame", "gameID", game.ID, "player", marks.Human, "starter", game.Turn)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// EndGame discards the session.
func (that *gameUseCase) EndGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return nil
}

// MakeTurn applies the human move. A finished session is returned together with ErrGameFinished.
func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	if err = game.MakeTurn(game.Marks.Human, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "method", "MakeTurn", "gameID", gameID, "winner", game.WinnerSide(), "cell", cell)
	}

	return game, nil
}

// BotTurn applies the bot move when it is the bot's turn.
func (that *gameUseCase) BotTurn(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "BotTurn", "gameID", gameID)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	move, err := that.botService.MakeTurn(game)
	if err != nil {
		return game, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.WinnerSide(), "cell", move.Index)
	}

	return game, nil
}
