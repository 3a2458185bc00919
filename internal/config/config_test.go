package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads every key", func(t *testing.T) {
		// Given: a config file with all keys set
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
socket-port: "8081"
game:
  player-mark: o
  starter: bot
  bot-delay: 1s
  bot-opening-delay: 2s
`)

		// When
		conf, err := Load(path)

		// Then
		require.NoError(t, err)
		assert.Equal(t, &Config{
			LogLevel:   "debug",
			HTTPPort:   "8080",
			SocketPort: "8081",
			Game: Game{
				PlayerMark:      "o",
				Starter:         "bot",
				BotDelay:        time.Second,
				BotOpeningDelay: 2 * time.Second,
			},
		}, conf)
		assert.Equal(t, entity.Marks{Human: entity.PlayerO, Bot: entity.PlayerX}, conf.Game.Marks())
		assert.Equal(t, entity.TurnBot, conf.Game.FirstTurn())
	})

	t.Run("Fills defaults", func(t *testing.T) {
		// Given: a config file with a single key
		path := writeConfig(t, "log-level: debug\n")

		// When
		conf, err := Load(path)

		// Then: the remaining keys take their defaults
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "X", conf.Game.PlayerMark)
		assert.Equal(t, entity.TurnPlayer, conf.Game.FirstTurn())
		assert.Equal(t, 350*time.Millisecond, conf.Game.BotDelay)
		assert.Equal(t, 400*time.Millisecond, conf.Game.BotOpeningDelay)
	})

	t.Run("Rejects an unknown mark", func(t *testing.T) {
		path := writeConfig(t, "game:\n  player-mark: Z\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Rejects an unknown starter", func(t *testing.T) {
		path := writeConfig(t, "game:\n  starter: nobody\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, apperror.ErrInvalidStarter)
	})

	t.Run("Rejects a negative delay", func(t *testing.T) {
		path := writeConfig(t, "game:\n  bot-delay: -1s\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrInvalidDelay)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
	})
}

func TestLoadEnv(t *testing.T) {
	// Given: the starter and delay come from the environment
	t.Setenv("GAME_STARTER", "bot")
	t.Setenv("GAME_BOT_DELAY", "10ms")

	// When
	conf, err := LoadEnv()

	// Then
	require.NoError(t, err)
	assert.Equal(t, entity.TurnBot, conf.Game.FirstTurn())
	assert.Equal(t, 10*time.Millisecond, conf.Game.BotDelay)
	assert.Equal(t, 400*time.Millisecond, conf.Game.BotOpeningDelay)
}
