package session

import "github.com/pavelc4/nimbus-tg-bot/internal/youtube"

// State tracks where a download session is in its lifecycle. Sessions are
// removed from their store on reaching a terminal state, so the field mostly
// matters for observability and tests: transition legality can be asserted
// directly instead of inferred from side effects.
type State int

const (
	StateAwaitingChoice State = iota
	StateDownloading
	StateCompleted
	StateFailed
	StateCancelled
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAwaitingChoice:
		return "awaiting_choice"
	case StateDownloading:
		return "downloading"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Download is the payload of one quality-selection flow, from the moment a
// query resolves until the media is delivered or the flow dies.
type Download struct {
	Token     string
	URL       string
	Meta      *youtube.Metadata
	UserID    int64
	UserLabel string
	ChatID    int64
	MessageID int
	ThumbPath string
	State     State
}

// Search is the payload of one paginated search-results flow.
type Search struct {
	Token   string
	Query   string
	Results []youtube.SearchResult
	UserID  int64
	ChatID  int64
}

// CookieRemoval guards the /rmc confirmation round trip.
type CookieRemoval struct {
	Token  string
	UserID int64
	ChatID int64
}
