// Package decisions implements the persisted dispatch log. Client
// adapters report each downstream push here, giving operators a durable
// record of what was dispatched per tenant.
package decisions

import (
	"time"

	"github.com/google/uuid"

	"github.com/llmaniac/beacon/internal/tenants"
)

// Decision is a stored dispatch record.
type Decision struct {
	ID          uuid.UUID      `json:"id"`
	ContainerID string         `json:"container_id"`
	Event       string         `json:"event"`
	Sender      tenants.Sender `json:"sender"`
	Properties  map[string]any `json:"properties"`
	RecordedAt  time.Time      `json:"recorded_at"`
}

// RecordCommand carries the data needed to record a dispatched event.
type RecordCommand struct {
	ContainerID string         `json:"containerId"`
	Event       string         `json:"event"`
	Sender      tenants.Sender `json:"sender"`
	Properties  map[string]any `json:"properties"`
}

// Filters contains optional filtering criteria for decision queries.
// Empty fields are ignored; matching is exact.
type Filters struct {
	ContainerID string `json:"container_id,omitempty"`
	Event       string `json:"event,omitempty"`
}
