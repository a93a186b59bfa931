package handler

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/internal/quality"
)

func callbackData(flow, token, arg string) string {
	if arg == "" {
		return flow + "|" + token
	}
	return flow + "|" + token + "|" + arg
}

// pairRows lays buttons out two per row, with an optional full-width footer.
func pairRows(buttons []tgbotapi.InlineKeyboardButton, footer *tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	if footer != nil {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{*footer})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func videoQualityMarkup(flow, cancelFlow, token string, presets []quality.VideoPreset) tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for _, p := range presets {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(p.Key+" 📥", callbackData(flow, token, p.Key)))
	}
	cancel := tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", callbackData(cancelFlow, token, ""))
	return pairRows(buttons, &cancel)
}

func audioQualityMarkup(flow, cancelFlow, token string, presets []quality.AudioPreset) tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for _, p := range presets {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(p.Key+" 📥", callbackData(flow, token, p.Key)))
	}
	cancel := tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", callbackData(cancelFlow, token, ""))
	return pairRows(buttons, &cancel)
}

func searchNavMarkup(token string, page int, hasPrev, hasNext bool) tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	if hasPrev {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("◀️ Prev", callbackData(FlowSearchPage, token, fmt.Sprint(page-1))))
	}
	if hasNext {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", callbackData(FlowSearchPage, token, fmt.Sprint(page+1))))
	}
	closeBtn := tgbotapi.NewInlineKeyboardButtonData("❌ Close", callbackData(FlowSearchClose, token, ""))
	return pairRows(buttons, &closeBtn)
}

func infoActionMarkup(token, url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("▶️ Watch", url),
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Download", callbackData(FlowInfoAction, token, "ask")),
		),
	)
}

func infoFiletypeMarkup(token string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Video (Mp4)", callbackData(FlowInfoAction, token, "video")),
			tgbotapi.NewInlineKeyboardButtonData("🎵 Audio (Mp3)", callbackData(FlowInfoAction, token, "audio")),
		),
	)
}

func cookieRemovalMarkup(token string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", callbackData(FlowCookieRemove, token, "cancel")),
			tgbotapi.NewInlineKeyboardButtonData("Delete ⚙️", callbackData(FlowCookieRemove, token, "delete")),
		),
	)
}

// clearMarkup removes every button from a message.
var clearMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
