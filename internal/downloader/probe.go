package downloader

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Capabilities is what the source actually offers, discovered by probing.
type Capabilities struct {
	VideoHeights  []int
	AudioBitrates []int // kbps
}

// Probe lists the source's renditions. A probe failure is survivable: the
// quality negotiator falls back to the full preset table.
func (c *Client) Probe(ctx context.Context, url string) (Capabilities, error) {
	video, err := c.yt.GetVideoContext(ctx, url)
	if err != nil {
		return Capabilities{}, fmt.Errorf("probe %s: %w", url, err)
	}

	heights := map[int]bool{}
	bitrates := map[int]bool{}
	for _, f := range video.Formats {
		if strings.HasPrefix(f.MimeType, "video/") && f.Height > 0 {
			heights[f.Height] = true
		}
		if strings.HasPrefix(f.MimeType, "audio/") && f.Bitrate > 0 {
			bitrates[f.Bitrate/1000] = true
		}
	}

	caps := Capabilities{
		VideoHeights:  sortedDesc(heights),
		AudioBitrates: sortedDesc(bitrates),
	}
	return caps, nil
}

func sortedDesc(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
