package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/pavelc4/nimbus-tg-bot/config"
	"github.com/pavelc4/nimbus-tg-bot/internal/bot"
	"github.com/pavelc4/nimbus-tg-bot/internal/downloader"
	"github.com/pavelc4/nimbus-tg-bot/internal/handler"
	"github.com/pavelc4/nimbus-tg-bot/internal/telegram"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
	"github.com/pavelc4/nimbus-tg-bot/pkg/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file, using process environment")
	}

	cfg := config.Load()
	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is not set")
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		logger.Error("Could not create download directory", "dir", cfg.DownloadDir, "error", err)
		os.Exit(1)
	}

	api, err := newBotAPI(cfg)
	if err != nil {
		logger.Error("Telegram login failed", "error", err)
		os.Exit(1)
	}

	pool := worker.NewPool(cfg.MaxWorkers)
	backend := downloader.NewClient(cfg.DownloadDir, cfg.CookiesPath)
	search := youtube.NewSearchClient()
	resolver := youtube.NewResolver(search)
	sender := telegram.NewSender(api)

	h := handler.New(cfg, sender, resolver, search, backend, youtube.NewThumbnailer(), pool)
	b := bot.New(api, h)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Update loop stopped", "error", err)
	}

	logger.Info("Shutting down, draining workers", "timeout", cfg.DrainTimeout)
	if !pool.StopTimeout(cfg.DrainTimeout) {
		logger.Warn("Drain timeout exceeded, abandoning in-flight jobs")
	}
	logger.Info("Bye")
}

// newBotAPI connects either to api.telegram.org or to a local bot API server
// when TELEGRAM_API_URL is set. A local server lifts the 50MB upload cap.
func newBotAPI(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	if cfg.TelegramAPIURL != "" {
		return tgbotapi.NewBotAPIWithAPIEndpoint(cfg.BotToken, cfg.TelegramAPIURL+"/bot%s/%s")
	}
	return tgbotapi.NewBotAPI(cfg.BotToken)
}
