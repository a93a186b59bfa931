package handler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/config"
	"github.com/pavelc4/nimbus-tg-bot/internal/downloader"
	"github.com/pavelc4/nimbus-tg-bot/internal/youtube"
	"github.com/pavelc4/nimbus-tg-bot/pkg/worker"
)

type fakeMessenger struct {
	mu         sync.Mutex
	nextID     int
	texts      []string
	edits      []string
	answers    []string
	alerts     []bool
	deleted    int
	videos     int
	audios     int
	uploadErr  error
	docContent []byte
	lastMarkup tgbotapi.InlineKeyboardMarkup
}

func (m *fakeMessenger) SendText(chatID int64, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.texts = append(m.texts, text)
	return m.nextID, nil
}

func (m *fakeMessenger) EditText(chatID int64, messageID int, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, text)
}

func (m *fakeMessenger) EditTextWithMarkup(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, text)
	m.lastMarkup = markup
}

func (m *fakeMessenger) DeleteMessage(chatID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted++
}

func (m *fakeMessenger) AnswerCallback(callbackID, text string, alert bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, text)
	m.alerts = append(m.alerts, alert)
}

func (m *fakeMessenger) SendPhoto(chatID int64, photoPath, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return m.nextID, nil
}

func (m *fakeMessenger) SendVideo(chatID int64, path, caption string, duration, height int, thumbPath string, progress func(current, total int64)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.videos++
	return nil
}

func (m *fakeMessenger) SendAudio(chatID int64, path, caption, title, performer string, duration int, thumbPath string, progress func(current, total int64)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.audios++
	return nil
}

func (m *fakeMessenger) DownloadDocument(fileID, destPath string) error {
	content := m.docContent
	if content == nil {
		content = []byte(fileID)
	}
	return os.WriteFile(destPath, content, 0o644)
}

func (m *fakeMessenger) lastEdit() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.edits) == 0 {
		return ""
	}
	return m.edits[len(m.edits)-1]
}

func (m *fakeMessenger) lastAnswer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.answers) == 0 {
		return ""
	}
	return m.answers[len(m.answers)-1]
}

type fakeResolver struct {
	meta *youtube.Metadata
	err  error
}

func (r *fakeResolver) Resolve(ctx context.Context, queryOrURL string) (*youtube.Metadata, error) {
	return r.meta, r.err
}

type fakeSearcher struct {
	results []youtube.SearchResult
	err     error
}

func (s *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]youtube.SearchResult, error) {
	return s.results, s.err
}

type fakeBackend struct {
	mu         sync.Mutex
	dir        string
	caps       downloader.Capabilities
	probeErr   error
	fetchErr   error
	fileSize   int64
	probeCalls int
	fetchCalls int
	cookies    string
}

func (b *fakeBackend) Probe(ctx context.Context, url string) (downloader.Capabilities, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probeCalls++
	return b.caps, b.probeErr
}

func (b *fakeBackend) fetch(ext string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchCalls++
	if b.fetchErr != nil {
		return "", b.fetchErr
	}
	stage, err := os.MkdirTemp(b.dir, "stage")
	if err != nil {
		return "", err
	}
	path := filepath.Join(stage, "media."+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if b.fileSize > 0 {
		// Sparse file, so size ceilings can be tested without the bytes.
		if err := f.Truncate(b.fileSize); err != nil {
			f.Close()
			return "", err
		}
	}
	return path, f.Close()
}

func (b *fakeBackend) FetchVideo(ctx context.Context, url string, maxHeight int) (string, error) {
	return b.fetch("mp4")
}

func (b *fakeBackend) FetchAudio(ctx context.Context, url string, bitrate int) (string, error) {
	return b.fetch("mp3")
}

func (b *fakeBackend) CookiesPath() string { return b.cookies }

type fakeThumbnailer struct{}

func (fakeThumbnailer) Fetch(ctx context.Context, videoID, outPath string) (string, error) {
	return "", errors.New("no thumbnail")
}

func testMeta() *youtube.Metadata {
	return &youtube.Metadata{
		VideoID:  "dQw4w9WgXcQ",
		URL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:    "Test Video",
		Channel:  "Test Channel",
		Duration: 300,
		Views:    1234,
	}
}

func newTestHandler(t *testing.T, msg *fakeMessenger, res *fakeResolver, srch *fakeSearcher, back *fakeBackend) *Handler {
	t.Helper()
	dir := t.TempDir()
	if back.dir == "" {
		back.dir = dir
	}
	if back.cookies == "" {
		back.cookies = filepath.Join(dir, "cookies", "cookies.txt")
	}
	cfg := &config.Config{
		OwnerID:     99,
		DownloadDir: dir,
		MaxWorkers:  1,
	}
	pool := worker.NewPool(1)
	t.Cleanup(pool.Stop)

	h := New(cfg, msg, res, srch, back, fakeThumbnailer{}, pool)
	h.spawn = func(task func()) { task() }
	return h
}
