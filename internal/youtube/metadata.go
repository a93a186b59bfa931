package youtube

import (
	"context"
	"errors"
	"fmt"

	ytdl "github.com/kkdai/youtube/v2"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

// ErrNoResults means the query matched nothing even after the lenient
// retry. It is a normal outcome and callers translate it into a user-facing
// notice rather than an error report.
var ErrNoResults = errors.New("youtube: no results")

// Metadata is the canonical identity of one piece of media.
type Metadata struct {
	VideoID  string
	URL      string
	Title    string
	Channel  string
	Duration int // seconds
	Views    int64
}

// Resolver turns a free-text query or URL into Metadata.
type Resolver struct {
	yt     *ytdl.Client
	search *SearchClient
}

func NewResolver(search *SearchClient) *Resolver {
	return &Resolver{
		yt:     &ytdl.Client{},
		search: search,
	}
}

// Resolve canonicalises URLs directly and falls back to search for free
// text, taking the top-ranked hit.
func (r *Resolver) Resolve(ctx context.Context, queryOrURL string) (*Metadata, error) {
	if url := CanonicalURL(queryOrURL); url != "" {
		return r.fromURL(ctx, url)
	}

	hits, err := r.search.Search(ctx, queryOrURL, 1)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", queryOrURL, err)
	}
	if len(hits) == 0 {
		return nil, ErrNoResults
	}
	return r.fromURL(ctx, hits[0].URL())
}

func (r *Resolver) fromURL(ctx context.Context, url string) (*Metadata, error) {
	video, err := r.yt.GetVideoContext(ctx, url)
	if err != nil {
		logger.Warn("Metadata fetch failed", "url", url, "error", err)
		return nil, fmt.Errorf("metadata for %s: %w", url, err)
	}

	return &Metadata{
		VideoID:  video.ID,
		URL:      WatchURL(video.ID),
		Title:    video.Title,
		Channel:  video.Author,
		Duration: int(video.Duration.Seconds()),
		Views:    int64(video.Views),
	}, nil
}
