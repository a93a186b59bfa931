package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavelc4/nimbus-tg-bot/internal/session"
	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
	"github.com/pavelc4/nimbus-tg-bot/pkg/utils"
)

// ValidateNetscapeCookies checks that data looks like a Netscape cookie
// export: every non-comment line carries the seven tab-separated fields, and
// at least one cookie entry is present.
func ValidateNetscapeCookies(data []byte) error {
	entries := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(strings.Split(line, "\t")) != 7 {
			return fmt.Errorf("malformed cookie line: %.40q", line)
		}
		entries++
	}
	if entries == 0 {
		return fmt.Errorf("no cookie entries found")
	}
	return nil
}

// HandleAddCookies runs /adc: owner replies to an uploaded .txt export and
// the bot installs it for the extraction backend.
func (h *Handler) HandleAddCookies(chatID, userID int64, fileID, fileName string) {
	if userID != h.cfg.OwnerID {
		h.msg.SendText(chatID, "❌ <b>This command is restricted to the bot owner.</b>")
		return
	}
	if fileID == "" {
		h.msg.SendText(chatID, "⚠️ <b>Reply to an uploaded <code>cookies.txt</code> file with /adc.</b>")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".txt") {
		h.msg.SendText(chatID, "❌ <b>Cookies must be a .txt Netscape export.</b>")
		return
	}

	dest := h.backend.CookiesPath()
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		h.msg.SendText(chatID, "❌ <b>Could not prepare cookies directory.</b>")
		return
	}

	staging := dest + ".incoming"
	if err := h.msg.DownloadDocument(fileID, staging); err != nil {
		logger.Error("Cookie download failed", "error", err)
		h.msg.SendText(chatID, "❌ <b>Could not download the file. Try again.</b>")
		return
	}

	data, err := os.ReadFile(staging)
	if err == nil {
		err = ValidateNetscapeCookies(data)
	}
	if err != nil {
		utils.RemoveFile(staging)
		logger.Warn("Cookie validation failed", "error", err)
		h.msg.SendText(chatID, "❌ <b>That file is not a valid Netscape cookies export.</b>")
		return
	}

	if err := os.Rename(staging, dest); err != nil {
		utils.RemoveFile(staging)
		h.msg.SendText(chatID, "❌ <b>Could not install cookies.</b>")
		return
	}

	logger.Info("Cookies installed", "path", dest)
	h.msg.SendText(chatID, "✅ <b>Cookies installed. Downloads will now use them.</b>")
}

// HandleRemoveCookies runs /rmc: ask the owner to confirm before deleting
// the installed cookies.
func (h *Handler) HandleRemoveCookies(chatID, userID int64) {
	if userID != h.cfg.OwnerID {
		h.msg.SendText(chatID, "❌ <b>This command is restricted to the bot owner.</b>")
		return
	}
	if _, err := os.Stat(h.backend.CookiesPath()); err != nil {
		h.msg.SendText(chatID, "ℹ️ <b>No cookies are installed.</b>")
		return
	}

	token := session.Token(userID)
	h.removals.Put(token, &session.CookieRemoval{Token: token, UserID: userID, ChatID: chatID})

	statusID, err := h.msg.SendText(chatID, "⚠️ <b>Delete the installed cookies?</b>")
	if err != nil {
		h.removals.Pop(token)
		return
	}
	h.msg.EditTextWithMarkup(chatID, statusID, "⚠️ <b>Delete the installed cookies?</b>", cookieRemovalMarkup(token))
}

// OnCookieRemove handles RMC with a delete/cancel arg.
func (h *Handler) OnCookieRemove(cb Callback, token, arg string) {
	sess, ok := h.removals.Get(token)
	if !ok {
		h.expireCallback(cb)
		return
	}
	if sess.UserID != cb.UserID {
		h.msg.AnswerCallback(cb.ID, "❌ This is not your session.", true)
		return
	}

	if _, ok := h.removals.Pop(token); !ok {
		h.expireCallback(cb)
		return
	}

	switch arg {
	case "delete":
		if err := os.Remove(h.backend.CookiesPath()); err != nil {
			logger.Error("Cookie removal failed", "error", err)
			h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, "❌ <b>Could not delete cookies.</b>", clearMarkup)
		} else {
			h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, "✅ <b>Cookies deleted.</b>", clearMarkup)
		}
	default:
		h.msg.EditTextWithMarkup(cb.ChatID, cb.MessageID, "ℹ️ <b>Cookies kept.</b>", clearMarkup)
	}
	h.msg.AnswerCallback(cb.ID, "", false)
}
