package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/internal/handler"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
)

func (b *Bot) routeMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID
	label := handler.UserLabel(userID, msg.From.FirstName)

	if !msg.IsCommand() {
		// A bare YouTube link behaves like /yt.
		if url := youtube.CanonicalURL(msg.Text); url != "" {
			b.h.HandleVideoCommand(ctx, chatID, userID, label, url)
		}
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		b.h.HandleStart(chatID, msg.From.FirstName)
	case "help":
		b.h.HandleHelp(chatID)
	case "yt", "video", "mp4", "dl":
		if args == "" {
			b.h.HandleHelp(chatID)
			return
		}
		b.h.HandleVideoCommand(ctx, chatID, userID, label, args)
	case "mp3", "song", "aud":
		if args == "" {
			b.h.HandleHelp(chatID)
			return
		}
		b.h.HandleAudioCommand(ctx, chatID, userID, label, args)
	case "search":
		b.h.HandleSearchCommand(ctx, chatID, userID, args)
	case "info":
		b.h.HandleInfoCommand(ctx, chatID, userID, label, args)
	case "stats":
		b.h.HandleStats(chatID, userID)
	case "adc":
		fileID, fileName := replyDocument(msg)
		b.h.HandleAddCookies(chatID, userID, fileID, fileName)
	case "rmc":
		b.h.HandleRemoveCookies(chatID, userID)
	}
}

func replyDocument(msg *tgbotapi.Message) (fileID, fileName string) {
	if msg.ReplyToMessage == nil || msg.ReplyToMessage.Document == nil {
		return "", ""
	}
	doc := msg.ReplyToMessage.Document
	return doc.FileID, doc.FileName
}

// routeCallback decodes a "flow|token|arg" payload and dispatches it.
// Anything that does not parse is dropped without acknowledgement.
func (b *Bot) routeCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.From == nil || q.Message == nil {
		return
	}
	parts := strings.Split(q.Data, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return
	}
	flow, token := parts[0], parts[1]
	arg := ""
	if len(parts) == 3 {
		arg = parts[2]
	}

	cb := handler.Callback{
		ID:        q.ID,
		UserID:    q.From.ID,
		ChatID:    q.Message.Chat.ID,
		MessageID: q.Message.MessageID,
	}

	switch flow {
	case handler.FlowVideoQuality:
		b.h.OnVideoQuality(cb, token, arg)
	case handler.FlowAudioQuality:
		b.h.OnAudioQuality(cb, token, arg)
	case handler.FlowCancel:
		b.h.OnDownloadCancel(cb, token)
	case handler.FlowSearchPage:
		b.h.OnSearchPage(cb, token, arg)
	case handler.FlowSearchClose:
		b.h.OnSearchClose(cb, token)
	case handler.FlowInfoAction:
		b.h.OnInfoAction(ctx, cb, token, arg)
	case handler.FlowInfoVideo:
		b.h.OnInfoVideoQuality(cb, token, arg)
	case handler.FlowInfoAudio:
		b.h.OnInfoAudioQuality(cb, token, arg)
	case handler.FlowInfoCancel:
		b.h.OnInfoCancel(cb, token)
	case handler.FlowCookieRemove:
		b.h.OnCookieRemove(cb, token, arg)
	}
}
