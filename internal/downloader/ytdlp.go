package downloader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	ytdl "github.com/kkdai/youtube/v2"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

const (
	fetchTimeout  = 30 * time.Minute
	socketTimeout = 60
	fetchRetries  = 3
)

var (
	videoExts = []string{".mp4", ".mkv", ".webm"}
	audioExts = []string{".mp3", ".m4a", ".webm", ".ogg"}
)

// Client is the media backend: it probes capabilities through the extraction
// library and shells out to yt-dlp for the actual fetch/transcode, the same
// split the rest of the pipeline assumes (probing is cheap, fetching is not).
type Client struct {
	yt          *ytdl.Client
	baseDir     string
	cookiesPath string
}

func NewClient(baseDir, cookiesPath string) *Client {
	return &Client{
		yt:          &ytdl.Client{},
		baseDir:     baseDir,
		cookiesPath: cookiesPath,
	}
}

// CookiesPath exposes the jar location for the cookie-management flow.
func (c *Client) CookiesPath() string {
	return c.cookiesPath
}

// FetchVideo downloads url capped at maxHeight and returns the merged mp4
// path inside a fresh staging directory. The caller owns cleanup of the
// directory containing the returned file.
func (c *Client) FetchVideo(ctx context.Context, url string, maxHeight int) (string, error) {
	format := fmt.Sprintf(
		"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=%d]+bestaudio/best[height<=%d]/best",
		maxHeight, maxHeight, maxHeight,
	)
	args := []string{
		"-f", format,
		"--merge-output-format", "mp4",
	}
	return c.run(ctx, url, args, videoExts)
}

// FetchAudio downloads url and transcodes to mp3 at the given kbps target.
func (c *Client) FetchAudio(ctx context.Context, url string, bitrate int) (string, error) {
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", fmt.Sprintf("%dK", bitrate),
	}
	return c.run(ctx, url, args, audioExts)
}

func (c *Client) run(ctx context.Context, url string, extraArgs []string, wantExts []string) (string, error) {
	stagingDir := filepath.Join(c.baseDir, uuid.NewString())
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	args := []string{
		"--quiet",
		"--no-warnings",
		"--no-progress",
		"--no-check-certificates",
		"--socket-timeout", fmt.Sprint(socketTimeout),
		"--retries", fmt.Sprint(fetchRetries),
		"--concurrent-fragments", "5",
		"-o", filepath.Join(stagingDir, "media.%(ext)s"),
	}
	if _, err := os.Stat(c.cookiesPath); err == nil {
		args = append(args, "--cookies", c.cookiesPath)
	}
	args = append(args, extraArgs...)
	args = append(args, url)

	start := time.Now()
	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.RemoveAll(stagingDir)
		return "", fmt.Errorf("yt-dlp failed: %w\nstderr: %s", err, stderr.String())
	}

	path := findDownloaded(stagingDir, wantExts)
	if path == "" {
		os.RemoveAll(stagingDir)
		return "", fmt.Errorf("no output file in %s", stagingDir)
	}

	logger.InfoWithDuration("Fetch finished", start, "url", url, "file", filepath.Base(path))
	return path, nil
}
