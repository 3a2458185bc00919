package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

var ErrInvalidDelay = errors.New("bot delay must not be negative")

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Game       Game   `yaml:"game"`
}

// Game holds the defaults of a new game and the pacing of the bot.
type Game struct {
	PlayerMark      string        `yaml:"player-mark" env:"GAME_PLAYER_MARK" env-default:"X"`
	Starter         string        `yaml:"starter" env:"GAME_STARTER" env-default:"player"`
	BotDelay        time.Duration `yaml:"bot-delay" env:"GAME_BOT_DELAY" env-default:"350ms"`
	BotOpeningDelay time.Duration `yaml:"bot-opening-delay" env:"GAME_BOT_OPENING_DELAY" env-default:"400ms"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadEnv builds the config from the environment only, for binaries that ship without a config file.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if _, err := entity.ParseMark(that.Game.PlayerMark); err != nil {
		return fmt.Errorf("game.player-mark: %w", err)
	}

	if _, err := entity.ParseStarter(that.Game.Starter); err != nil {
		return fmt.Errorf("game.starter: %w", err)
	}

	if that.Game.BotDelay < 0 || that.Game.BotOpeningDelay < 0 {
		return ErrInvalidDelay
	}

	return nil
}

// Marks returns the default mark assignment of a new game.
func (that *Game) Marks() entity.Marks {
	mark, err := entity.ParseMark(that.PlayerMark)
	if err != nil {
		mark = entity.PlayerX
	}

	marks, _ := entity.NewMarks(mark)

	return marks
}

// FirstTurn returns the default starter of a new game.
func (that *Game) FirstTurn() string {
	starter, err := entity.ParseStarter(that.Starter)
	if err != nil {
		return entity.TurnPlayer
	}

	return starter
}
