package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
	"github.com/Infinite-Tech-Repair/service-repair/internal/events"
)

// eventSource identifies this service in published event envelopes.
const eventSource = "service-repair"

// Notifier schedules out-of-band customer notifications. Calls return
// immediately; delivery outcome never reaches the triggering operation.
type Notifier interface {
	NotifyCreated(s bookingDomain.Summary)
	NotifyStatusChanged(s bookingDomain.Summary, newStatus bookingDomain.Status)
}

// EventPublisher emits booking lifecycle events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, envelope *events.Envelope) error
}

// TrackingCache caches tracking-lookup summaries. Nil disables caching.
type TrackingCache interface {
	Get(ctx context.Context, identifier string) (*bookingDomain.Summary, bool)
	Set(ctx context.Context, identifier string, s bookingDomain.Summary)
	Invalidate(ctx context.Context, identifiers ...string)
}

// CreateResult is returned after a successful intake.
type CreateResult struct {
	ID         uint64    `json:"dbId"`
	TrackingID string    `json:"trackingId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpdateStatusResult is returned after a successful status write.
type UpdateStatusResult struct {
	ID         uint64               `json:"id"`
	TrackingID string               `json:"trackingId"`
	Status     bookingDomain.Status `json:"status"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

// BookingService orchestrates the repair booking use cases.
type BookingService struct {
	repo      bookingDomain.Repository
	archiver  bookingDomain.Archiver
	search    bookingDomain.SearchEngine
	notifier  Notifier
	publisher EventPublisher
	cache     TrackingCache
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService. publisher and cache may be
// nil, which disables event publishing and lookup caching respectively.
func NewBookingService(
	repo bookingDomain.Repository,
	archiver bookingDomain.Archiver,
	search bookingDomain.SearchEngine,
	notifier Notifier,
	publisher EventPublisher,
	cache TrackingCache,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		archiver:  archiver,
		search:    search,
		notifier:  notifier,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// CreateBooking validates intake fields, persists a new booking with
// status=Booked, and schedules the confirmation notification.
func (s *BookingService) CreateBooking(ctx context.Context, in bookingDomain.Intake) (*CreateResult, error) {
	b, err := bookingDomain.NewBooking(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.NotifyCreated(b.Summary())

	s.publishEvent(ctx, events.BookingCreated, b.TrackingID(), events.BookingCreatedEvent{
		BookingID:   b.ID(),
		TrackingID:  b.TrackingID(),
		DeviceType:  b.DeviceType(),
		ServiceType: b.ServiceType(),
		OccurredAt:  time.Now().UTC(),
	})

	s.logger.Info("booking created",
		zap.Uint64("booking_id", b.ID()),
		zap.String("tracking_id", b.TrackingID()),
	)

	return &CreateResult{
		ID:         b.ID(),
		TrackingID: b.TrackingID(),
		CreatedAt:  b.CreatedAt(),
	}, nil
}

// TrackBooking looks up a booking by tracking id or surrogate key and
// returns its customer-facing summary.
func (s *BookingService) TrackBooking(ctx context.Context, identifier string) (*bookingDomain.Summary, error) {
	if s.cache != nil {
		if summary, ok := s.cache.Get(ctx, identifier); ok {
			return summary, nil
		}
	}

	b, err := s.repo.FindByTrackingIDOrID(ctx, identifier)
	if err != nil {
		return nil, err
	}

	summary := b.Summary()
	if s.cache != nil {
		s.cache.Set(ctx, identifier, summary)
	}
	return &summary, nil
}

// UpdateStatus validates the new status against the fixed set, re-reads the
// booking to obtain the notification payload, writes the status, and
// schedules the status-change notification. The read and the write are two
// separate round-trips with no row lock between them, so concurrent updates
// on the same id race at the store level.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint64, rawStatus string) (*UpdateStatusResult, error) {
	status, err := bookingDomain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	s.notifier.NotifyStatusChanged(b.Summary(), status)

	s.publishEvent(ctx, events.BookingStatusChanged, b.TrackingID(), events.BookingStatusChangedEvent{
		BookingID:  id,
		TrackingID: b.TrackingID(),
		OldStatus:  b.Status().String(),
		NewStatus:  status.String(),
		OccurredAt: now,
	})

	s.invalidateTracking(ctx, b.TrackingID(), id)

	s.logger.Info("booking status updated",
		zap.Uint64("booking_id", id),
		zap.String("tracking_id", b.TrackingID()),
		zap.String("status", status.String()),
	)

	return &UpdateStatusResult{
		ID:         id,
		TrackingID: b.TrackingID(),
		Status:     status,
		UpdatedAt:  now,
	}, nil
}

// ArchiveBooking migrates a booking into the archive partition.
func (s *BookingService) ArchiveBooking(ctx context.Context, id uint64) (*bookingDomain.Record, error) {
	record, err := s.archiver.Archive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingArchived, record.TrackingID, events.BookingArchivedEvent{
		OriginalID: id,
		TrackingID: record.TrackingID,
		Status:     record.Status.String(),
		ArchivedAt: *record.ArchivedAt,
		OccurredAt: time.Now().UTC(),
	})

	s.invalidateTracking(ctx, record.TrackingID, id)

	s.logger.Info("booking archived",
		zap.Uint64("original_id", id),
		zap.String("tracking_id", record.TrackingID),
	)

	return record, nil
}

// ListBookings returns a page over the active partition, or over both
// partitions when a query is present.
func (s *BookingService) ListBookings(ctx context.Context, query string, limit, offset int) (*bookingDomain.Page, error) {
	page, err := s.search.List(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return page, nil
}

// ListArchivedBookings returns a page over the archive partition.
func (s *BookingService) ListArchivedBookings(ctx context.Context, limit, offset int) (*bookingDomain.Page, error) {
	page, err := s.search.ListArchived(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived bookings: %w", err)
	}
	return page, nil
}

func (s *BookingService) invalidateTracking(ctx context.Context, trackingID string, id uint64) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, trackingID, strconv.FormatUint(id, 10))
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.publisher == nil {
		return
	}

	envelope, err := events.NewEnvelope(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create event envelope",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, events.TopicBookingEvents, key, envelope); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
