package testutil

import (
	"strings"
	"sync"
)

// Blocker aborts requests whose URL contains Pattern and lets everything
// else through. It remembers what it blocked.
type Blocker struct {
	Pattern string

	mu      sync.Mutex
	blocked []string
}

// NewBlocker returns a Blocker for the given URL substring.
func NewBlocker(pattern string) *Blocker {
	return &Blocker{Pattern: pattern}
}

// Blocks reports whether url must be aborted. An empty pattern blocks nothing.
func (b *Blocker) Blocks(url string) bool {
	return b.Pattern != "" && strings.Contains(url, b.Pattern)
}

// Blocked returns the URLs aborted so far.
func (b *Blocker) Blocked() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.blocked...)
}

func (b *Blocker) record(url string) {
	b.mu.Lock()
	b.blocked = append(b.blocked, url)
	b.mu.Unlock()
}
