package youtube

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nfnt/resize"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

const (
	thumbMaxEdge  = 320
	thumbMaxBytes = 20 * 1024
)

// Thumbnailer fetches and shrinks preview images. Thumbnails are optional
// decoration: every failure path returns an error the caller is expected to
// log and ignore.
type Thumbnailer struct {
	http *http.Client
}

func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch writes a JPEG thumbnail for videoID to outPath, preferring the
// maxres variant, and returns the written path.
func (t *Thumbnailer) Fetch(ctx context.Context, videoID, outPath string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("thumbnail: empty video id")
	}

	urls := []string{
		fmt.Sprintf("https://i.ytimg.com/vi/%s/maxresdefault.jpg", videoID),
		fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID),
	}

	var lastErr error
	for _, url := range urls {
		raw, err := t.fetchRaw(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if err := shrinkAndSave(raw, outPath); err != nil {
			lastErr = err
			continue
		}
		return outPath, nil
	}
	return "", fmt.Errorf("thumbnail for %s: %w", videoID, lastErr)
}

func (t *Thumbnailer) fetchRaw(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// shrinkAndSave downscales to 320px and re-encodes at descending JPEG
// quality until the result fits the Telegram thumbnail size cap. If even the
// lowest quality overshoots, the last attempt is written anyway.
func shrinkAndSave(raw []byte, outPath string) error {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode thumbnail: %w", err)
	}

	small := resize.Thumbnail(thumbMaxEdge, thumbMaxEdge, img, resize.Lanczos3)

	var buf bytes.Buffer
	for _, q := range []int{85, 60, 40} {
		buf.Reset()
		if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: q}); err != nil {
			return fmt.Errorf("encode thumbnail: %w", err)
		}
		if buf.Len() <= thumbMaxBytes {
			break
		}
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Debug("Thumbnail saved", "path", outPath, "bytes", buf.Len())
	return nil
}
