// Package tenants implements the per-container configuration store.
// It loads each tenant's event taxonomy and allowed-origin policy from
// disk, validates eagerly, and caches the result for the process lifetime.
package tenants

// Sender identifies which side of the conversation produced a message.
type Sender string

// Recognized sender values.
const (
	SenderHuman Sender = "human"
	SenderAI    Sender = "ai"
)

// Valid reports whether s is one of the recognized sender values.
func (s Sender) Valid() bool {
	return s == SenderHuman || s == SenderAI
}

// EventDefinition is a named category that a message can be classified
// into. Threshold is parsed and range-checked but never gates the
// matching decision; confidence filtering is delegated entirely to the
// classification capability. Changing that would change observable
// outcomes for existing tenants.
type EventDefinition struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Examples    []string `json:"examples"`
	Sender      Sender   `json:"sender" validate:"required,oneof=human ai"`
	Threshold   *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Settings holds a tenant's request policy.
type Settings struct {
	AllowedDomains []string `json:"allowed_domains" validate:"required,min=1,dive,required"`
}

// TenantConfig is the validated configuration for one container.
type TenantConfig struct {
	ContainerID    string            `json:"container_id"`
	Events         []EventDefinition `json:"events"`
	AllowedOrigins []string          `json:"allowed_origins"`
}

// EventsForSender returns the events defined for the given sender,
// preserving definition order.
func (c *TenantConfig) EventsForSender(sender Sender) []EventDefinition {
	var events []EventDefinition
	for _, event := range c.Events {
		if event.Sender == sender {
			events = append(events, event)
		}
	}
	return events
}

// Event returns the event with the given name, or nil when no event
// matches.
func (c *TenantConfig) Event(name string) *EventDefinition {
	for i := range c.Events {
		if c.Events[i].Name == name {
			return &c.Events[i]
		}
	}
	return nil
}
