package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read once at startup from the environment.
type Config struct {
	// BotToken is the Telegram transport credential. Required.
	BotToken string `env:"BOT_TOKEN"`
	// AdminID is the operator chat; 0 disables admin notifications.
	AdminID int64 `env:"ADMIN_ID" envDefault:"0"`
	// USDTWallet is the TRC20 address shown in payment instructions.
	USDTWallet string `env:"USDT_WALLET"`
	// DBFile is the path to the JSON document store.
	DBFile string `env:"DB_FILE" envDefault:"bot_data.json"`
	Debug  bool   `env:"DEBUG" envDefault:"false"`
}

func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	return &cfg, nil
}
