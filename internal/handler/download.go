package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/config"
	"github.com/pavelc4/nimbus-tg-bot/internal/downloader"
	"github.com/pavelc4/nimbus-tg-bot/internal/quality"
	"github.com/pavelc4/nimbus-tg-bot/internal/session"
	"github.com/pavelc4/nimbus-tg-bot/internal/telegram"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
	"github.com/pavelc4/nimbus-tg-bot/pkg/utils"
)

// Callback identifies one button press.
type Callback struct {
	ID        string
	UserID    int64
	ChatID    int64
	MessageID int
}

// HandleVideoCommand runs the /yt family: resolve, offer video qualities.
func (h *Handler) HandleVideoCommand(ctx context.Context, chatID, userID int64, userLabel, query string) {
	h.startDownloadFlow(ctx, chatID, userID, userLabel, query, false)
}

// HandleAudioCommand runs the /mp3 family: resolve, offer audio qualities.
func (h *Handler) HandleAudioCommand(ctx context.Context, chatID, userID int64, userLabel, query string) {
	h.startDownloadFlow(ctx, chatID, userID, userLabel, query, true)
}

func (h *Handler) startDownloadFlow(ctx context.Context, chatID, userID int64, userLabel, query string, audio bool) {
	statusID, err := h.msg.SendText(chatID, "🔍 <b>Searching YouTube...</b>")
	if err != nil {
		logger.Error("Status message failed", "chat", chatID, "error", err)
		return
	}

	meta, err := h.resolver.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, youtube.ErrNoResults) {
			h.msg.EditText(chatID, statusID, "❌ <b>No results found. Try a different query.</b>")
		} else {
			logger.Warn("Resolve failed", "query", query, "error", err)
			h.msg.EditText(chatID, statusID, "❌ <b>Could not fetch video info. Try again.</b>")
		}
		return
	}

	if meta.Duration > config.MaxDuration {
		h.msg.EditText(chatID, statusID, "❌ <b>Video exceeds 2 hours limit.</b>")
		return
	}

	h.msg.EditText(chatID, statusID, "📡 <b>Fetching Available Qualities...</b>")
	caps := h.probe(ctx, meta.URL)

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

	markup := h.offerMarkup(token, caps, audio, FlowVideoQuality, FlowAudioQuality, FlowCancel)
	h.downloads.Put(token, sess)
	h.presentOffer(sess, offerCaption(meta, audio), markup)
}

// probe asks the backend what the source offers, through the worker pool so
// the event path never runs extraction work itself. Failure degrades to an
// empty capability set, which the negotiator treats as "offer everything".
func (h *Handler) probe(ctx context.Context, url string) downloader.Capabilities {
	var caps downloader.Capabilities
	err := h.pool.Do(func() error {
		var perr error
		caps, perr = h.backend.Probe(ctx, url)
		return perr
	})
	if err != nil {
		logger.Warn("Capability probe failed, offering full preset table", "url", url, "error", err)
		return downloader.Capabilities{}
	}
	return caps
}

func (h *Handler) fetchThumb(ctx context.Context, videoID, token string) string {
	dir := filepath.Join(h.cfg.DownloadDir, token)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	path, err := h.thumbs.Fetch(ctx, videoID, filepath.Join(dir, "thumb.jpg"))
	if err != nil {
		logger.Debug("Thumbnail skipped", "video", videoID, "error", err)
		return ""
	}
	return path
}

func (h *Handler) offerMarkup(token string, caps downloader.Capabilities, audio bool, videoFlow, audioFlow, cancelFlow string) tgbotapi.InlineKeyboardMarkup {
	if audio {
		return audioQualityMarkup(audioFlow, cancelFlow, token, quality.NegotiateAudio(caps.AudioBitrates))
	}
	return videoQualityMarkup(videoFlow, cancelFlow, token, quality.NegotiateVideo(caps.VideoHeights))
}

// presentOffer shows the quality keyboard, on top of the thumbnail when one
// was fetched. Sending a fresh photo message replaces the status message, so
// the session's message ref moves with it.
func (h *Handler) presentOffer(sess *session.Download, caption string, markup tgbotapi.InlineKeyboardMarkup) {
	if sess.ThumbPath != "" {
		if _, err := os.Stat(sess.ThumbPath); err == nil {
			h.msg.DeleteMessage(sess.ChatID, sess.MessageID)
			sentID, err := h.msg.SendPhoto(sess.ChatID, sess.ThumbPath, caption, &markup)
			if err == nil {
				sess.MessageID = sentID
				return
			}
			logger.Warn("Photo offer failed, falling back to text", "error", err)
		}
	}
	h.msg.EditTextWithMarkup(sess.ChatID, sess.MessageID, caption, markup)
}

// OnVideoQuality handles a YV button press.
func (h *Handler) OnVideoQuality(cb Callback, token, key string) {
	h.chooseQuality(cb, h.downloads, token, key, false)
}

// OnAudioQuality handles a YA button press.
func (h *Handler) OnAudioQuality(cb Callback, token, key string) {
	h.chooseQuality(cb, h.downloads, token, key, true)
}

// chooseQuality is the Choose transition: authorize, validate, claim,
// spawn. The atomic Pop is what makes a double tap harmless — the second
// press finds no session and is told it expired.
func (h *Handler) chooseQuality(cb Callback, store *session.Store[*session.Download], token, key string, audio bool) {
	sess, ok := store.Get(token)
	if !ok {
		h.expireCallback(cb)
		return
	}

	if sess.UserID != cb.UserID {
		h.msg.AnswerCallback(cb.ID, "❌ This is not your download session.", true)
		return
	}

	if !validPreset(key, audio) {
		h.msg.AnswerCallback(cb.ID, "❌ Invalid quality.", true)
		return
	}

	claimed, ok := store.Pop(token)
	if !ok {
		// Lost the claim race to a duplicate press.
		h.expireCallback(cb)
		return
	}
	claimed.State = session.StateDownloading
	claimed.MessageID = cb.MessageID

	h.msg.AnswerCallback(cb.ID, "⬇️ Download Has Started", true)
	h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, fmt.Sprintf("⬇️ <b>Starting %s Download...</b>", key), clearMarkup)

	h.spawn(func() { h.runDownload(claimed, key, audio) })
}

func validPreset(key string, audio bool) bool {
	if audio {
		_, ok := quality.AudioPresetByKey(key)
		return ok
	}
	_, ok := quality.VideoPresetByKey(key)
	return ok
}

func (h *Handler) expireCallback(cb Callback) {
	h.msg.AnswerCallback(cb.ID, "❌ Session expired. Please search again.", true)
	h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, "❌ <b>Session expired. Please search again.</b>", clearMarkup)
}

// runDownload executes the claimed session off the event path: fetch through
// the worker pool, enforce the size ceiling, upload with progress, and tear
// everything down. Cleanup runs on every exit.
func (h *Handler) runDownload(sess *session.Download, key string, audio bool) {
	ctx := context.Background()
	chatID, statusID := sess.ChatID, sess.MessageID
	meta := sess.Meta

	defer utils.CleanupDir(filepath.Join(h.cfg.DownloadDir, sess.Token))

	h.msg.EditText(chatID, statusID, fmt.Sprintf(
		"⬇️ <b>Downloading %s...</b>\n<b>Title:</b> <code>%s</code>\n%s\n<b>Please wait...</b>",
		key, html.EscapeString(meta.Title), captionRule,
	))

	var path string
	err := h.pool.Do(func() error {
		var ferr error
		if audio {
			preset, _ := quality.AudioPresetByKey(key)
			path, ferr = h.backend.FetchAudio(ctx, sess.URL, preset.Bitrate)
		} else {
			preset, _ := quality.VideoPresetByKey(key)
			path, ferr = h.backend.FetchVideo(ctx, sess.URL, preset.Height)
		}
		return ferr
	})
	if err != nil {
		logger.Error("Download failed", "url", sess.URL, "quality", key, "error", err)
		h.msg.EditText(chatID, statusID, "❌ <b>Download Failed. Please try again.</b>")
		h.finish(sess, session.StateFailed, audio, 0)
		return
	}
	defer utils.CleanupDir(filepath.Dir(path))

	size := downloader.FileSize(path)
	if size > config.MaxFileSize {
		h.msg.EditText(chatID, statusID, "❌ <b>File exceeds 2GB. Try a lower quality.</b>")
		h.finish(sess, session.StateFailed, audio, 0)
		return
	}

	tracker := telegram.NewTracker(func(text string) {
		h.msg.EditText(chatID, statusID, text)
	})

	caption := deliveryCaption(meta, sess.UserLabel, audio)
	if audio {
		err = h.msg.SendAudio(chatID, path, caption, meta.Title, meta.Channel, meta.Duration, sess.ThumbPath, tracker.Update)
	} else {
		height := 0
		if preset, ok := quality.VideoPresetByKey(key); ok {
			height = preset.Height
		}
		err = h.msg.SendVideo(chatID, path, caption, meta.Duration, height, sess.ThumbPath, tracker.Update)
	}

	if err != nil {
		logger.Error("Upload failed", "url", sess.URL, "error", err)
		h.msg.EditText(chatID, statusID, "❌ <b>Upload Failed. Please try again.</b>")
		h.finish(sess, session.StateFailed, audio, 0)
		return
	}

	h.msg.DeleteMessage(chatID, statusID)
	logger.Info("Delivered", "quality", key, "title", meta.Title, "chat", chatID)
	h.finish(sess, session.StateCompleted, audio, size)
}

func (h *Handler) finish(sess *session.Download, state session.State, audio bool, bytes int64) {
	sess.State = state
	h.counters.Record(sess.UserID, audio, bytes, state == session.StateCompleted)
}

// OnDownloadCancel handles YX: discard the session before any claim. An
// absent session means the flow already resolved; that is acknowledged, not
// errored.
func (h *Handler) OnDownloadCancel(cb Callback, token string) {
	h.cancelDownload(cb, h.downloads, token)
}

func (h *Handler) cancelDownload(cb Callback, store *session.Store[*session.Download], token string) {
	if sess, ok := store.Get(token); ok && sess.UserID != cb.UserID {
		h.msg.AnswerCallback(cb.ID, "❌ This is not your session.", true)
		return
	}

	if sess, ok := store.Pop(token); ok {
		sess.State = session.StateCancelled
		utils.CleanupDir(filepath.Join(h.cfg.DownloadDir, sess.Token))
	}

	h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, "❌ <b>Download Cancelled.</b>", clearMarkup)
	h.msg.AnswerCallback(cb.ID, "✅ Cancelled", false)
}
