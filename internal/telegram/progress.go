package telegram

import (
	"fmt"
	"sync"
	"time"

	"github.com/pavelc4/nimbus-tg-bot/pkg/utils"
)

const progressMinPeriod = 2 * time.Second

// Tracker projects upload progress into a status message, at most once per
// minPeriod regardless of how often the transfer calls back. The Bot API
// rate-limits message edits, so everything between ticks is dropped; the
// final call (current == total) always goes through.
type Tracker struct {
	edit      func(text string)
	start     time.Time
	minPeriod time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewTracker(edit func(text string)) *Tracker {
	return &Tracker{
		edit:      edit,
		start:     time.Now(),
		minPeriod: progressMinPeriod,
	}
}

func (t *Tracker) Update(current, total int64) {
	t.mu.Lock()
	now := time.Now()
	if now.Sub(t.last) < t.minPeriod && total > 0 && current < total {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.mu.Unlock()

	t.edit(renderProgress(current, total, now.Sub(t.start)))
}

func renderProgress(current, total int64, elapsed time.Duration) string {
	percent := float64(0)
	if total > 0 {
		percent = float64(current) / float64(total) * 100
	}

	speed := float64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(current) / secs / 1024 / 1024
	}

	return fmt.Sprintf(
		"📤 <b>Upload Progress</b>\n\n%s\n\n<b>Done:</b> %.2f%%\n<b>Speed:</b> %.2f MB/s\n<b>Uploaded:</b> %s of %s",
		utils.FormatProgressBar(percent),
		percent,
		speed,
		utils.FormatFileSize(current),
		utils.FormatFileSize(total),
	)
}
