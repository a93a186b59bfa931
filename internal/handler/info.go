package handler

import (
	"context"
	"strings"

	"github.com/pavelc4/nimbus-tg-bot/config"
	"github.com/pavelc4/nimbus-tg-bot/internal/session"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

// HandleInfoCommand runs /info: show a metadata card for a URL, with an
// optional download branch behind the buttons. Unlike the direct download
// commands this one only accepts links, not free-text queries.
func (h *Handler) HandleInfoCommand(ctx context.Context, chatID, userID int64, userLabel, arg string) {
	url := youtube.CanonicalURL(strings.TrimSpace(arg))
	if url == "" {
		h.msg.SendText(chatID, "⚠️ <b>Usage:</b> <code>/info https://youtu.be/...</code>")
		return
	}

	statusID, err := h.msg.SendText(chatID, "🔍 <b>Fetching video info...</b>")
	if err != nil {
		return
	}

	meta, err := h.resolver.Resolve(ctx, url)
	if err != nil {
		logger.Warn("Info resolve failed", "url", url, "error", err)
		h.msg.EditText(chatID, statusID, "❌ <b>Could not fetch video info. Try again.</b>")
		return
	}

	token := session.Token(userID)
	sess := &session.Download{
		Token:     token,
		URL:       meta.URL,
		Meta:      meta,
		UserID:    userID,
		UserLabel: userLabel,
		ChatID:    chatID,
		MessageID: statusID,
		State:     session.StateAwaitingChoice,
	}
	sess.ThumbPath = h.fetchThumb(ctx, meta.VideoID, token)

	h.infos.Put(token, sess)
	h.presentOffer(sess, infoCaption(meta), infoActionMarkup(token, meta.URL))
}

// OnInfoAction handles IF: "ask" opens the filetype picker, "video"/"audio"
// probe the source and swap in the quality keyboard. The session stays in the
// store through every stage until a quality is claimed.
func (h *Handler) OnInfoAction(ctx context.Context, cb Callback, token, arg string) {
	sess, ok := h.infos.Get(token)
	if !ok {
		h.expireCallback(cb)
		return
	}
	if sess.UserID != cb.UserID {
		h.msg.AnswerCallback(cb.ID, "❌ This is not your session.", true)
		return
	}

	switch arg {
	case "ask":
		if sess.Meta.Duration > config.MaxDuration {
			h.msg.AnswerCallback(cb.ID, "❌ Video exceeds 2 hours limit.", true)
			return
		}
		h.msg.AnswerCallback(cb.ID, "", false)
		h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID,
			infoCaption(sess.Meta)+"\n<b>Select file type:</b>", infoFiletypeMarkup(token))
	case "video", "audio":
		h.msg.AnswerCallback(cb.ID, "📡 Fetching qualities...", false)
		caps := h.probe(ctx, sess.URL)
		audio := arg == "audio"
		markup := h.offerMarkup(token, caps, audio, FlowInfoVideo, FlowInfoAudio, FlowInfoCancel)
		h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, offerCaption(sess.Meta, audio), markup)
	default:
		h.msg.AnswerCallback(cb.ID, "", false)
	}
}

// OnInfoVideoQuality handles IFV.
func (h *Handler) OnInfoVideoQuality(cb Callback, token, key string) {
	h.chooseQuality(cb, h.infos, token, key, false)
}

// OnInfoAudioQuality handles IFA.
func (h *Handler) OnInfoAudioQuality(cb Callback, token, key string) {
	h.chooseQuality(cb, h.infos, token, key, true)
}

// OnInfoCancel handles IFX.
func (h *Handler) OnInfoCancel(cb Callback, token string) {
	h.cancelDownload(cb, h.infos, token)
}
