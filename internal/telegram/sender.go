package telegram

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

// Sender wraps the Bot API client with the handful of primitives the flows
// need. Edits and deletes on already-gone messages are routine during
// interactive flows, so those errors are logged and swallowed here instead
// of at every call site.
type Sender struct {
	api  *tgbotapi.BotAPI
	http *http.Client
}

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{
		api:  api,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *Sender) SendText(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	sent, err := s.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

func (s *Sender) EditText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if _, err := s.api.Send(edit); err != nil {
		logger.Debug("Edit failed", "chat", chatID, "msg", messageID, "error", err)
	}
}

// EditTextWithMarkup replaces both text and buttons in one call. Passing the
// zero markup clears the buttons.
func (s *Sender) EditTextWithMarkup(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if _, err := s.api.Send(edit); err != nil {
		logger.Debug("Edit with markup failed", "chat", chatID, "msg", messageID, "error", err)
	}
}

func (s *Sender) DeleteMessage(chatID int64, messageID int) {
	if _, err := s.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.Debug("Delete failed", "chat", chatID, "msg", messageID, "error", err)
	}
}

func (s *Sender) AnswerCallback(callbackID, text string, alert bool) {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := s.api.Request(cb); err != nil {
		logger.Debug("Callback answer failed", "callback", callbackID, "error", err)
	}
}

func (s *Sender) SendPhoto(chatID int64, photoPath, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(photoPath))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		photo.ReplyMarkup = markup
	}
	sent, err := s.api.Send(photo)
	if err != nil {
		return 0, fmt.Errorf("send photo: %w", err)
	}
	return sent.MessageID, nil
}

// SendVideo uploads a video file, feeding byte counts to progress as the
// multipart body is consumed.
func (s *Sender) SendVideo(chatID int64, path, caption string, duration, height int, thumbPath string, progress func(current, total int64)) error {
	file, total, err := openCounted(path, progress)
	if err != nil {
		return err
	}
	defer file.Close()

	video := tgbotapi.NewVideo(chatID, tgbotapi.FileReader{Name: filepath.Base(path), Reader: file})
	video.Caption = caption
	video.ParseMode = tgbotapi.ModeHTML
	video.Duration = duration
	video.SupportsStreaming = true
	if thumbPath != "" {
		video.Thumb = tgbotapi.FilePath(thumbPath)
	}

	logger.Info("Uploading video", "path", path, "size", total)
	if _, err := s.api.Send(video); err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	return nil
}

// SendAudio uploads an audio file with title/performer tags.
func (s *Sender) SendAudio(chatID int64, path, caption, title, performer string, duration int, thumbPath string, progress func(current, total int64)) error {
	file, total, err := openCounted(path, progress)
	if err != nil {
		return err
	}
	defer file.Close()

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FileReader{Name: filepath.Base(path), Reader: file})
	audio.Caption = caption
	audio.ParseMode = tgbotapi.ModeHTML
	audio.Title = title
	audio.Performer = performer
	audio.Duration = duration
	if thumbPath != "" {
		audio.Thumb = tgbotapi.FilePath(thumbPath)
	}

	logger.Info("Uploading audio", "path", path, "size", total)
	if _, err := s.api.Send(audio); err != nil {
		return fmt.Errorf("upload audio: %w", err)
	}
	return nil
}

// DownloadDocument fetches a file posted to the chat (used for cookie jars).
func (s *Sender) DownloadDocument(fileID, destPath string) error {
	url, err := s.api.GetFileDirectURL(fileID)
	if err != nil {
		return fmt.Errorf("resolve file url: %w", err)
	}

	resp, err := s.http.Get(url)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch document: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func openCounted(path string, progress func(current, total int64)) (io.ReadCloser, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("stat upload: %w", err)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open upload: %w", err)
	}
	if progress == nil {
		return file, info.Size(), nil
	}
	return &countingReader{file: file, total: info.Size(), onRead: progress}, info.Size(), nil
}

type countingReader struct {
	file   *os.File
	total  int64
	read   int64
	onRead func(current, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.file.Read(p)
	if n > 0 {
		c.read += int64(n)
		c.onRead(c.read, c.total)
	}
	return n, err
}

func (c *countingReader) Close() error {
	return c.file.Close()
}
