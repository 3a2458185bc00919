package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
)

const (
	maxWaitDuration = 30 * time.Second
	testBotDelay    = time.Millisecond
)

// Suite is the application stack wired in process on an in-memory store.
type Suite struct {
	*testing.T
	Logger *slog.Logger
	Config *config.Config

	Games   repository.GameRepository
	UseCase usecase.GameUseCase
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	conf := &config.Config{
		LogLevel: "debug",
		Game: config.Game{
			PlayerMark:      "X",
			Starter:         "player",
			BotDelay:        testBotDelay,
			BotOpeningDelay: testBotDelay,
		},
	}

	games := repository.NewGameRepository()
	gameUseCase := usecase.NewGameUseCase(
		logger,
		service.NewGameService(games),
		service.NewBotService(logger),
	)

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Config:  conf,
		Games:   games,
		UseCase: gameUseCase,
	}
}
