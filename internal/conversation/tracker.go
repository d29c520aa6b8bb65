// Package conversation tracks the single most recent turn per context
// key, giving the classifier one turn of conversational context without
// holding a transcript.
package conversation

import (
	"regexp"
	"sync"

	"github.com/llmaniac/beacon/internal/tenants"
)

var safeSessionID = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// Turn is one recorded message: its text and who sent it.
type Turn struct {
	Text   string
	Sender tenants.Sender
}

// Tracker holds one prior turn per context key. Concurrent requests for
// the same key interleave last-write-wins: context is approximate, not
// strictly ordered. The lock only guarantees a turn is never torn, so
// text is always paired with its own sender.
type Tracker struct {
	mu    sync.RWMutex
	slots map[string]Turn
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		slots: make(map[string]Turn),
	}
}

// Previous returns the most recent turn recorded for key, if any.
func (t *Tracker) Previous(key string) (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	turn, ok := t.slots[key]
	return turn, ok
}

// SetLast records turn as the most recent for key, replacing any prior value.
func (t *Tracker) SetLast(key string, turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slots[key] = turn
}

// Key derives the context key for a container and optional session id.
// A session id outside the safe character set falls back to the
// container-only key rather than failing the request.
func Key(containerID, sessionID string) string {
	if sessionID != "" && safeSessionID.MatchString(sessionID) {
		return containerID + ":" + sessionID
	}
	return containerID
}
