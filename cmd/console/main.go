package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	app "github.com/rocketscienceinc/tictactoe-bot/internal"
	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/console"
)

// main - plays tic-tac-toe against the bot in the terminal.
func main() {
	configPath := flag.String("config", "", "path to config.yml; the environment is used when empty")
	flag.Parse()

	conf, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stderr, conf.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	output := termenv.NewOutput(os.Stdout)
	game := console.New(logger, app.NewGameUseCase(logger), conf.Game, os.Stdin, output)

	if err = game.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("console stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadEnv()
	}

	return config.Load(path)
}
