// Command keyshop runs the P2E key storefront Telegram bot.
package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"keyshop-bot/internal/bot"
	"keyshop-bot/internal/config"
	"keyshop-bot/internal/service"
	"keyshop-bot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	store, err := storage.OpenFileDB(cfg.DBFile)
	if err != nil {
		logger.Fatal("open store", zap.String("path", cfg.DBFile), zap.Error(err))
	}

	shop := service.NewShop(store, logger)
	shop.StartupSweep()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("telegram auth", zap.Error(err))
	}
	api.Debug = cfg.Debug

	logger.Info("bot started",
		zap.String("username", api.Self.UserName),
		zap.Int64("admin", cfg.AdminID),
		zap.String("store", cfg.DBFile),
	)

	bot.New(api, shop, cfg.AdminID, cfg.USDTWallet, logger).Run()
}
