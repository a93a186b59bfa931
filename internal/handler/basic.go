package handler

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleStart runs /start.
func (h *Handler) HandleStart(chatID int64, firstName string) {
	text := fmt.Sprintf(
		"👋 <b>Hi %s!</b>\n%s\n"+
			"I download YouTube videos and music straight into this chat.\n\n"+
			"🎬 <code>/yt query or link</code> — download a video\n"+
			"🎵 <code>/mp3 query or link</code> — download audio\n"+
			"🔍 <code>/search query</code> — browse results\n"+
			"ℹ️ <code>/info link</code> — inspect a video first\n%s\n"+
			"Send /help for the full command list.",
		firstName, captionRule, captionRule,
	)
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Updates", "https://t.me/nimbus_updates"),
			tgbotapi.NewInlineKeyboardButtonURL("🛠️ Source", "https://github.com/pavelc4/nimbus-tg-bot"),
		),
	)
	id, err := h.msg.SendText(chatID, text)
	if err != nil {
		return
	}
	h.msg.EditTextWithMarkup(chatID, id, text, markup)
}

// HandleHelp runs /help.
func (h *Handler) HandleHelp(chatID int64) {
	text := fmt.Sprintf(
		"📖 <b>Commands</b>\n%s\n"+
			"🎬 <code>/yt</code> — download a video (query or link)\n"+
			"🎵 <code>/mp3</code> — download audio (query or link)\n"+
			"🔍 <code>/search</code> — list matching videos\n"+
			"ℹ️ <code>/info</code> — show metadata for a link\n"+
			"📊 <code>/stats</code> — bot health (owner)\n"+
			"🍪 <code>/adc</code> — install cookies (owner, reply to .txt)\n"+
			"🍪 <code>/rmc</code> — remove cookies (owner)\n%s\n"+
			"Limits: videos up to 2 hours, files up to 2GB.",
		captionRule, captionRule,
	)
	h.msg.SendText(chatID, text)
}
