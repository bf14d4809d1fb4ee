package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Aggregate names the record an event is about. Its ID is the partition key,
// so every event for one record lands on the same partition in order.
type Aggregate struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// Event is the envelope written to every topic.
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Aggregate     Aggregate       `json:"aggregate"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Source        string          `json:"source"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEvent encodes payload into a fresh envelope. correlationID may be empty.
func NewEvent(eventType string, agg Aggregate, source, correlationID string, payload any) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Aggregate:     agg,
		OccurredAt:    time.Now().UTC(),
		Source:        source,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// Decode parses an envelope read back from a topic.
func Decode(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &e, nil
}

// DecodePayload unmarshals the payload into target.
func (e *Event) DecodePayload(target any) error {
	return json.Unmarshal(e.Payload, target)
}
