// Package classify implements the classification domain: it brokers a
// chat message to the language-model capability against the tenant's
// event taxonomy and returns a normalized decision.
package classify

import "github.com/llmaniac/beacon/internal/tenants"

// Command carries one inbound classification request together with the
// transport-level origin indicator.
type Command struct {
	Text        string         `json:"text"`
	Sender      tenants.Sender `json:"sender"`
	ContainerID string         `json:"containerId"`
	SessionID   string         `json:"sessionId,omitempty"`

	// Origin is the request's Origin header, set by the handler.
	Origin string `json:"-"`
}

// Result is the normalized classification decision. Event is nil when no
// event matched; ShouldPush is true only for a real match.
type Result struct {
	Event      *string        `json:"event"`
	Confidence float64        `json:"confidence"`
	ShouldPush bool           `json:"shouldPush"`
	Sender     tenants.Sender `json:"sender"`
}

func noMatch(sender tenants.Sender) *Result {
	return &Result{
		Event:      nil,
		Confidence: 0,
		ShouldPush: false,
		Sender:     sender,
	}
}
