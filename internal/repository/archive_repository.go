package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// GormArchiver executes the copy-then-delete migration of a booking from the
// active to the archive partition.
type GormArchiver struct {
	db *gorm.DB
}

// NewGormArchiver creates a new GormArchiver.
func NewGormArchiver(db *gorm.DB) *GormArchiver {
	return &GormArchiver{db: db}
}

// Archive copies the active row into the archive partition, mapping the
// active key into original_id, then deletes the active row. All steps run in
// one transaction: any failure rolls the whole migration back, so the booking
// is never visible in both partitions or in neither.
func (a *GormArchiver) Archive(ctx context.Context, id uint64) (*bookingDomain.Record, error) {
	var archived ArchivedBookingModel

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active BookingModel
		if err := tx.First(&active, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.AppError{
					Code:    domain.CodeNotFound,
					Message: fmt.Sprintf("booking %d not found or already archived", id),
				}
			}
			return fmt.Errorf("failed to read booking for archival: %w", err)
		}

		archived = archivedFromActive(&active, time.Now().UTC())
		if err := tx.Create(&archived).Error; err != nil {
			return fmt.Errorf("failed to copy booking into archive: %w", err)
		}

		// The delete count is authoritative: a concurrent archival that
		// already removed the row rolls this copy back.
		res := tx.Delete(&BookingModel{}, active.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete archived booking from active partition: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.AppError{
				Code:    domain.CodeNotFound,
				Message: fmt.Sprintf("booking %d not found or already archived", id),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record := archivedToRecord(&archived)
	return &record, nil
}
