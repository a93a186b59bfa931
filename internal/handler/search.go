package handler

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/pavelc4/nimbus-tg-bot/internal/session"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

const (
	searchFetchLimit = 50
	searchPageSize   = 5
)

// HandleSearchCommand runs /search: fetch up to 50 hits once, then page
// through the cached snapshot with Prev/Next buttons.
func (h *Handler) HandleSearchCommand(ctx context.Context, chatID, userID int64, query string) {
	if strings.TrimSpace(query) == "" {
		h.msg.SendText(chatID, "⚠️ <b>Usage:</b> <code>/search funny cat videos</code>")
		return
	}

	statusID, err := h.msg.SendText(chatID, fmt.Sprintf("🔍 <b>Searching for:</b> <code>%s</code>", html.EscapeString(query)))
	if err != nil {
		return
	}

	results, err := h.searcher.Search(ctx, query, searchFetchLimit)
	if err != nil {
		logger.Warn("Search failed", "query", query, "error", err)
		h.msg.EditText(chatID, statusID, "❌ <b>Search failed. Please try again.</b>")
		return
	}
	if len(results) == 0 {
		h.msg.EditText(chatID, statusID, "❌ <b>No results found. Try a different query.</b>")
		return
	}

	token := session.Token(userID)
	h.searches.Put(token, &session.Search{
		Token:   token,
		Query:   query,
		Results: results,
		UserID:  userID,
		ChatID:  chatID,
	})

	h.showSearchPage(chatID, statusID, token, query, results, 0)
}

// OnSearchPage handles SR: flip the stored result set to another page. The
// session stays in the store so every page flip reuses the same snapshot.
func (h *Handler) OnSearchPage(cb Callback, token, arg string) {
	sess, ok := h.searches.Get(token)
	if !ok {
		h.expireCallback(cb)
		return
	}
	if sess.UserID != cb.UserID {
		h.msg.AnswerCallback(cb.ID, "❌ This is not your search session.", true)
		return
	}

	page, err := strconv.Atoi(arg)
	if err != nil || page < 0 || page*searchPageSize >= len(sess.Results) {
		h.msg.AnswerCallback(cb.ID, "", false)
		return
	}

	h.msg.AnswerCallback(cb.ID, "", false)
	h.showSearchPage(cb.ChatID, cb.MessageID, token, sess.Query, sess.Results, page)
}

// OnSearchClose handles SX: discard the session and collapse the message.
func (h *Handler) OnSearchClose(cb Callback, token string) {
	if sess, ok := h.searches.Get(token); ok && sess.UserID != cb.UserID {
		h.msg.AnswerCallback(cb.ID, "❌ This is not your search session.", true)
		return
	}
	h.searches.Pop(token)
	h.msg.DeleteMessage(cb.ChatID, cb.MessageID)
	h.msg.AnswerCallback(cb.ID, "✅ Closed", false)
}

func (h *Handler) showSearchPage(chatID int64, messageID int, token, query string, results []youtube.SearchResult, page int) {
	start := page * searchPageSize
	end := start + searchPageSize
	if end > len(results) {
		end = len(results)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 <b>Results for:</b> <code>%s</code>\n%s\n", html.EscapeString(query), captionRule)
	for i, r := range results[start:end] {
		fmt.Fprintf(&b, "<b>%d.</b> <a href=\"%s\">%s</a>\n", start+i+1, r.URL(), html.EscapeString(r.Title))
		if r.Channel != "" {
			fmt.Fprintf(&b, "    👤 %s", html.EscapeString(r.Channel))
			if r.Duration != "" {
				fmt.Fprintf(&b, " · ⏱️ %s", r.Duration)
			}
			b.WriteString("\n")
		} else if r.Duration != "" {
			fmt.Fprintf(&b, "    ⏱️ %s\n", r.Duration)
		}
	}
	totalPages := (len(results) + searchPageSize - 1) / searchPageSize
	fmt.Fprintf(&b, "%s\nPage %d of %d", captionRule, page+1, totalPages)

	markup := searchNavMarkup(token, page, page > 0, end < len(results))
	h.msg.EditTextWithMarkup(chatID, messageID, b.String(), markup)
}
