package handler

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/config"
	"github.com/pavelc4/nimbus-tg-bot/internal/downloader"
	"github.com/pavelc4/nimbus-tg-bot/internal/session"
	"github.com/pavelc4/nimbus-tg-bot/internal/stats"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/worker"
)

// Callback flow tags embedded in button payloads ("tag|token|arg").
const (
	FlowVideoQuality = "YV"
	FlowAudioQuality = "YA"
	FlowCancel       = "YX"
	FlowSearchPage   = "SR"
	FlowSearchClose  = "SX"
	FlowInfoAction   = "IF"
	FlowInfoVideo    = "IFV"
	FlowInfoAudio    = "IFA"
	FlowInfoCancel   = "IFX"
	FlowCookieRemove = "RMC"
)

// Messenger is the messaging transport the flows drive. Implementations
// swallow edit/delete failures on already-gone messages.
type Messenger interface {
	SendText(chatID int64, text string) (int, error)
	EditText(chatID int64, messageID int, text string)
	EditTextWithMarkup(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup)
	DeleteMessage(chatID int64, messageID int)
	AnswerCallback(callbackID, text string, alert bool)
	SendPhoto(chatID int64, photoPath, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error)
	SendVideo(chatID int64, path, caption string, duration, height int, thumbPath string, progress func(current, total int64)) error
	SendAudio(chatID int64, path, caption, title, performer string, duration int, thumbPath string, progress func(current, total int64)) error
	DownloadDocument(fileID, destPath string) error
}

// Resolver turns a free-text query or URL into media metadata.
type Resolver interface {
	Resolve(ctx context.Context, queryOrURL string) (*youtube.Metadata, error)
}

// Searcher returns ranked search hits.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]youtube.SearchResult, error)
}

// Backend is the media extraction/transcoding collaborator.
type Backend interface {
	Probe(ctx context.Context, url string) (downloader.Capabilities, error)
	FetchVideo(ctx context.Context, url string, maxHeight int) (string, error)
	FetchAudio(ctx context.Context, url string, bitrate int) (string, error)
	CookiesPath() string
}

// Thumbnailer fetches preview images; failures are decoration-only.
type Thumbnailer interface {
	Fetch(ctx context.Context, videoID, outPath string) (string, error)
}

// Handler owns every interactive flow and the session stores that correlate
// their button events.
type Handler struct {
	cfg       *config.Config
	msg       Messenger
	resolver  Resolver
	searcher  Searcher
	backend   Backend
	thumbs    Thumbnailer
	pool      *worker.Pool
	counters  *stats.Counters
	startedAt time.Time

	downloads *session.Store[*session.Download]
	infos     *session.Store[*session.Download]
	searches  *session.Store[*session.Search]
	removals  *session.Store[*session.CookieRemoval]

	// spawn runs the post-claim download task off the event path.
	// Overridable so tests can run it inline.
	spawn func(task func())
}

func New(cfg *config.Config, msg Messenger, resolver Resolver, searcher Searcher, backend Backend, thumbs Thumbnailer, pool *worker.Pool) *Handler {
	return &Handler{
		cfg:       cfg,
		msg:       msg,
		resolver:  resolver,
		searcher:  searcher,
		backend:   backend,
		thumbs:    thumbs,
		pool:      pool,
		counters:  stats.NewCounters(),
		startedAt: time.Now(),
		downloads: session.NewStore[*session.Download](config.SessionTTL),
		infos:     session.NewStore[*session.Download](config.SessionTTL),
		searches:  session.NewStore[*session.Search](config.SessionTTL),
		removals:  session.NewStore[*session.CookieRemoval](config.SessionTTL),
		spawn:     func(task func()) { go task() },
	}
}
