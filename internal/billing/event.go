package billing

import (
	"encoding/json"
	"fmt"
)

// Subscription lifecycle event names that trigger a mutation. Anything
// else is acknowledged without processing.
const (
	EventSubscriptionCreated        = "subscription_created"
	EventSubscriptionUpdated        = "subscription_updated"
	EventSubscriptionPaymentSuccess = "subscription_payment_success"
	EventSubscriptionCancelled      = "subscription_cancelled"
)

// Event is one decoded webhook payload from the billing provider.
type Event struct {
	Meta EventMeta `json:"meta"`
	Data EventData `json:"data"`
}

// EventMeta carries the event name and optional pass-through user ID.
type EventMeta struct {
	EventName  string           `json:"event_name"`
	CustomData *EventCustomData `json:"custom_data"`
}

// EventCustomData is checkout custom data echoed back by the provider.
type EventCustomData struct {
	UserID string `json:"user_id"`
}

// EventData is the subscription object. ID is the subscription ID.
type EventData struct {
	ID         flexString      `json:"id"`
	Type       string          `json:"type"`
	Attributes EventAttributes `json:"attributes"`
}

// EventAttributes holds the subscription state fields Lema reads.
type EventAttributes struct {
	Status     string     `json:"status"`
	UserEmail  string     `json:"user_email"`
	CustomerID flexString `json:"customer_id"`
}

// flexString decodes a JSON string or number as a string. The provider
// sends numeric IDs in some payloads and string IDs in others.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", b)
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string { return string(f) }

// DecodeEvent parses and validates a raw webhook body. Loose or
// unexpected JSON fails here at the boundary instead of propagating
// untyped values inward.
func DecodeEvent(raw []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	if ev.Meta.EventName == "" {
		return nil, fmt.Errorf("webhook payload missing meta.event_name")
	}
	return &ev, nil
}

// Recognized reports whether the event name is one of the four
// subscription lifecycle events.
func (e *Event) Recognized() bool {
	switch e.Meta.EventName {
	case EventSubscriptionCreated, EventSubscriptionUpdated,
		EventSubscriptionPaymentSuccess, EventSubscriptionCancelled:
		return true
	}
	return false
}

// UserID returns the embedded user ID, or "" when absent.
func (e *Event) UserID() string {
	if e.Meta.CustomData == nil {
		return ""
	}
	return e.Meta.CustomData.UserID
}
