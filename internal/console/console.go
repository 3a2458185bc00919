// Package console plays a game against the bot in a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

var errQuit = errors.New("quit")

type gameUseCase interface {
	StartGame(ctx context.Context, humanMark entity.Mark, starter string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, gameID string) (*entity.Game, error)
}

type Console struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	conf        config.Game

	lines <-chan string
	out   *termenv.Output
}

func New(logger *slog.Logger, gameUseCase gameUseCase, conf config.Game, in io.Reader, out *termenv.Output) *Console {
	return &Console{
		logger:      logger.With("component", "console"),
		gameUseCase: gameUseCase,
		conf:        conf,
		lines:       readLines(in),
		out:         out,
	}
}

// Run plays games until the input ends, the player quits or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	for {
		again, err := that.playGame(ctx)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if !again {
			return nil
		}
	}
}

func (that *Console) playGame(ctx context.Context) (bool, error) {
	mark, starter, err := that.askOptions(ctx)
	if err != nil {
		return false, err
	}

	game, err := that.gameUseCase.StartGame(ctx, mark, starter)
	if err != nil {
		return false, fmt.Errorf("failed to start game: %w", err)
	}

	// the session is discarded whatever way the game ends
	gameID := game.ID
	defer func() {
		if endErr := that.gameUseCase.EndGame(context.Background(), gameID); endErr != nil {
			that.logger.Error("failed to end game", "gameID", gameID, "error", endErr)
		}
	}()

	that.printf("You play %s.\n", that.styleMark(game.Marks.Human, false))

	delay := that.conf.BotOpeningDelay
	for !game.IsFinished() {
		that.render(game)

		if game.IsBotTurn() {
			if game, err = that.botTurn(ctx, gameID, delay); err != nil {
				return false, err
			}
			delay = that.conf.BotDelay
			continue
		}

		if game, err = that.humanTurn(ctx, game); err != nil {
			return false, err
		}
		delay = that.conf.BotDelay
	}

	that.render(game)
	that.printf("%s\n", that.out.String(game.ResultText()).Bold())

	return that.askAgain(ctx)
}

func (that *Console) humanTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	for {
		that.printf("Your move (1-9, q to quit): ")

		line, err := that.readLine(ctx)
		if err != nil {
			return nil, err
		}

		if strings.EqualFold(line, "q") {
			return nil, errQuit
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			that.printf("Enter a number from 1 to 9.\n")
			continue
		}

		updated, err := that.gameUseCase.MakeTurn(ctx, game.ID, cell-1)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, apperror.ErrCellOccupied):
			that.printf("Cell %d is taken.\n", cell)
		case errors.Is(err, entity.ErrInvalidCell):
			that.printf("Enter a number from 1 to 9.\n")
		default:
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}
	}
}

func (that *Console) botTurn(ctx context.Context, gameID string, delay time.Duration) (*entity.Game, error) {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	game, err := that.gameUseCase.BotTurn(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return game, nil
}

func (that *Console) askOptions(ctx context.Context) (entity.Mark, string, error) {
	mark, err := that.askChoice(ctx, fmt.Sprintf("Choose your mark [X/O] (%s): ", that.conf.PlayerMark), that.conf.PlayerMark, func(value string) (string, error) {
		parsed, parseErr := entity.ParseMark(value)
		return string(parsed), parseErr
	})
	if err != nil {
		return "", "", err
	}

	starter, err := that.askChoice(ctx, fmt.Sprintf("Who starts? [player/bot] (%s): ", that.conf.Starter), that.conf.Starter, entity.ParseStarter)
	if err != nil {
		return "", "", err
	}

	return entity.Mark(mark), starter, nil
}

// askChoice prompts until parse accepts the answer; an empty answer takes fallback.
func (that *Console) askChoice(ctx context.Context, prompt, fallback string, parse func(string) (string, error)) (string, error) {
	for {
		that.printf("%s", prompt)

		line, err := that.readLine(ctx)
		if err != nil {
			return "", err
		}

		if line == "" {
			line = fallback
		}

		value, err := parse(line)
		if err == nil {
			return value, nil
		}

		that.printf("%v\n", err)
	}
}

func (that *Console) askAgain(ctx context.Context) (bool, error) {
	that.printf("Play again? [y/N]: ")

	line, err := that.readLine(ctx)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}

func (that *Console) render(game *entity.Game) {
	highlighted := make(map[int]bool, len(game.WinLine))
	for _, cell := range game.WinLine {
		highlighted[cell] = true
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			index := row*3 + col

			cell := that.out.String(strconv.Itoa(index + 1)).Faint().String()
			if mark := game.Board[index]; mark != entity.EmptyCell {
				cell = that.styleMark(mark, highlighted[index])
			}

			sb.WriteString(" " + cell + " ")
			if col < 2 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	that.printf("%s\n", sb.String())
}

func (that *Console) styleMark(mark entity.Mark, highlight bool) string {
	style := that.out.String(string(mark)).Bold()

	switch mark {
	case entity.PlayerX:
		style = style.Foreground(that.out.Color("9"))
	case entity.PlayerO:
		style = style.Foreground(that.out.Color("12"))
	}

	if highlight {
		style = style.Reverse()
	}

	return style.String()
}

func (that *Console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}
