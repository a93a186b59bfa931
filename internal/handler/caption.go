package handler

import (
	"fmt"
	"html"

	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/utils"
)

const captionRule = "━━━━━━━━━━━━━━━━━━━━━"

// deliveryCaption is attached to the uploaded media.
func deliveryCaption(meta *youtube.Metadata, userLabel string, audio bool) string {
	verb := "Watch"
	if audio {
		verb = "Listen"
	}
	return fmt.Sprintf(
		"🎵 <b>Title:</b> <code>%s</code>\n%s\n"+
			"👁️‍🗨️ <b>Views:</b> %s\n"+
			"🔗 <a href=\"%s\">%s On YouTube</a>\n"+
			"⏱️ <b>Duration:</b> %s\n%s\n"+
			"<b>Downloaded By</b> %s",
		html.EscapeString(meta.Title), captionRule,
		utils.FormatViews(meta.Views),
		meta.URL, verb,
		utils.FormatSeconds(meta.Duration), captionRule,
		userLabel,
	)
}

// offerCaption heads the quality-selection prompt.
func offerCaption(meta *youtube.Metadata, audio bool) string {
	icon, kind := "🎬", "video"
	if audio {
		icon, kind = "🎵", "audio"
	}
	return fmt.Sprintf(
		"%s <b>Title:</b> <code>%s</code>\n%s\n"+
			"👁️‍🗨️ <b>Views:</b> %s\n"+
			"🔗 <a href=\"%s\">Watch On YouTube</a>\n"+
			"⏱️ <b>Duration:</b> %s\n"+
			"👤 <b>Channel:</b> %s\n%s\n"+
			"<b>Select %s quality to download:</b>",
		icon, html.EscapeString(meta.Title), captionRule,
		utils.FormatViews(meta.Views),
		meta.URL,
		utils.FormatSeconds(meta.Duration),
		html.EscapeString(meta.Channel), captionRule,
		kind,
	)
}

// infoCaption is the metadata card for /info.
func infoCaption(meta *youtube.Metadata) string {
	return fmt.Sprintf(
		"🎬 <b>Title:</b> <code>%s</code>\n%s\n"+
			"👁️‍🗨️ <b>Views:</b> %s\n"+
			"⏱️ <b>Duration:</b> %s\n"+
			"👤 <b>Channel:</b> %s\n%s",
		html.EscapeString(meta.Title), captionRule,
		utils.FormatViews(meta.Views),
		utils.FormatSeconds(meta.Duration),
		html.EscapeString(meta.Channel), captionRule,
	)
}

// UserLabel renders a mention link for attribution lines.
func UserLabel(userID int64, name string) string {
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("<a href=\"tg://user?id=%d\">%s</a>", userID, html.EscapeString(name))
}
