package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/internal/handler"
	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

// Bot pumps Telegram updates into the flow handlers.
type Bot struct {
	api *tgbotapi.BotAPI
	h   *handler.Handler
}

func New(api *tgbotapi.BotAPI, h *handler.Handler) *Bot {
	return &Bot{api: api, h: h}
}

// Run blocks on the long-poll loop until ctx is cancelled. Every update is
// handled on its own goroutine so a slow flow never stalls the poll.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	logger.Info("Bot online", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Update handler panicked", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.routeCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.routeMessage(ctx, update.Message)
	}
}
