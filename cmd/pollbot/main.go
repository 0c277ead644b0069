package main

import (
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/holloway/bookclub/internal/bot"
	"github.com/holloway/bookclub/internal/bot/dialog"
	"github.com/holloway/bookclub/internal/logging"
)

func main() {
	godotenv.Load()

	logger := logging.Setup(os.Getenv("POLLBOT_LOG_LEVEL"), os.Getenv("POLLBOT_LOG_FORMAT"))

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		logger.Error("BOT_TOKEN is not set")
		os.Exit(1)
	}

	dbPath := os.Getenv("POLLBOT_DB_PATH")
	if dbPath == "" {
		dbPath = "pollbot.db"
	}
	dialogs, err := dialog.Open(dbPath)
	if err != nil {
		logger.Error("open dialogue database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer dialogs.Close()

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("connect to telegram", "error", err)
		os.Exit(1)
	}
	logger.Info("authorized", "username", api.Self.UserName)

	b := bot.New(api, dialogs, api.Self.UserName, logger.With("component", "bot"))

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := api.GetUpdatesChan(updateCfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down")
		api.StopReceivingUpdates()
	}()

	for update := range updates {
		if err := b.HandleUpdate(update); err != nil {
			logger.Error("handle update", "error", err)
		}
	}
}
