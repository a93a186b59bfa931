package session

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

var tokenSeq atomic.Uint64

// Token mints a short correlation key for one interactive flow. Tokens only
// need to be unique among live sessions; authorization is enforced by
// comparing the requester id, never by token secrecy.
func Token(userID int64) string {
	seq := tokenSeq.Add(1)
	raw := fmt.Sprintf("%d%d%d%d", time.Now().UnixNano(), os.Getpid(), userID, seq)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])[:12]
}
