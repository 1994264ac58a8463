package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents is the topic carrying booking lifecycle events.
const TopicBookingEvents = "repair.booking.events"

// Event types emitted by the booking service.
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingArchived      = "booking.archived"
)

// Envelope is the CloudEvents-style wrapper for every published message.
type Envelope struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewEnvelope wraps event data in an Envelope with a fresh id and timestamp.
func NewEnvelope(source, eventType string, data interface{}) (*Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return &Envelope{
		ID:     uuid.NewString(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the envelope payload into v.
func (e *Envelope) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// BookingCreatedEvent is emitted after a booking is durably created.
type BookingCreatedEvent struct {
	BookingID   uint64    `json:"booking_id"`
	TrackingID  string    `json:"tracking_id"`
	DeviceType  string    `json:"device_type"`
	ServiceType string    `json:"service_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is emitted after a successful status write.
type BookingStatusChangedEvent struct {
	BookingID  uint64    `json:"booking_id"`
	TrackingID string    `json:"tracking_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingArchivedEvent is emitted after a booking is migrated to the archive.
type BookingArchivedEvent struct {
	OriginalID uint64    `json:"original_id"`
	TrackingID string    `json:"tracking_id"`
	Status     string    `json:"status"`
	ArchivedAt time.Time `json:"archived_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
