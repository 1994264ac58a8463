package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// GormBookingRepository is the GORM-based implementation of the active
// partition repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create persists a new booking and records the store-assigned key on the
// aggregate. The tracking id is generated without a collision check, so a
// duplicate surfaces here as a conflict error.
func (r *GormBookingRepository) Create(ctx context.Context, b *bookingDomain.Booking) error {
	model, err := toBookingModel(b)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(
				fmt.Sprintf("tracking id %s already exists", b.TrackingID()),
			)
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}

	b.SetID(model.ID)
	return nil
}

// FindByID retrieves an active booking by its surrogate key.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uint64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", strconv.FormatUint(id, 10))
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByTrackingIDOrID looks up a booking by exact tracking id, or by
// surrogate key when the identifier parses as one.
func (r *GormBookingRepository) FindByTrackingIDOrID(ctx context.Context, identifier string) (*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx)
	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		query = query.Where("tracking_id = ? OR id = ?", identifier, id)
	} else {
		query = query.Where("tracking_id = ?", identifier)
	}

	var model BookingModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", identifier)
		}
		return nil, fmt.Errorf("failed to find booking by identifier: %w", err)
	}
	return toDomainBooking(&model)
}

// UpdateStatus writes status and updatedAt on the row identified by id. The
// write is unconditional on the prior status; only set membership has been
// validated upstream.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uint64, status bookingDomain.Status, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status.String(),
			"updated_at": at,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", strconv.FormatUint(id, 10))
	}
	return nil
}
