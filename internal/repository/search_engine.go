package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// unionSelect projects both partitions onto the common column shape. Rows
// sourced from the active partition carry NULL original_id and archived_at.
const unionSelect = `
SELECT id, NULL::bigint AS original_id, tracking_id, customer_name, email, phone,
       device_type, issue_description, service_type, address, booking_date,
       booking_time, status, created_at, updated_at, NULL::timestamptz AS archived_at
FROM bookings
WHERE LOWER(customer_name) LIKE @pattern
   OR LOWER(email) LIKE @pattern
   OR LOWER(tracking_id) LIKE @pattern
UNION ALL
SELECT id, original_id, tracking_id, customer_name, email, phone,
       device_type, issue_description, service_type, address, booking_date,
       booking_time, status, created_at, updated_at, archived_at
FROM archived_bookings
WHERE LOWER(customer_name) LIKE @pattern
   OR LOWER(email) LIKE @pattern
   OR LOWER(tracking_id) LIKE @pattern`

// recordRow is the scan target for the union projection.
type recordRow struct {
	ID               uint64
	OriginalID       *uint64
	TrackingID       string
	CustomerName     string
	Email            string
	Phone            string
	DeviceType       string
	IssueDescription string
	ServiceType      string
	Address          string
	BookingDate      string
	BookingTime      string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	ArchivedAt       *time.Time
}

// GormSearchEngine composes paginated reads over the active partition, or
// over the logical union of both partitions when a query is present.
type GormSearchEngine struct {
	db *gorm.DB
}

// NewGormSearchEngine creates a new GormSearchEngine.
func NewGormSearchEngine(db *gorm.DB) *GormSearchEngine {
	return &GormSearchEngine{db: db}
}

// List returns a page of bookings ordered by created_at descending. Without
// a query only the active partition is read; with a query both partitions are
// matched case-insensitively on customer name, email, and tracking id, and
// ordering and slicing apply to the combined set. Count and data run as two
// independent round-trips without a shared snapshot, so they may observe
// slightly different states under concurrent writes.
func (e *GormSearchEngine) List(ctx context.Context, query string, limit, offset int) (*bookingDomain.Page, error) {
	limit, offset = bookingDomain.ClampPage(limit, offset)

	query = strings.TrimSpace(query)
	if query == "" {
		return e.listActive(ctx, limit, offset)
	}
	return e.searchUnion(ctx, query, limit, offset)
}

func (e *GormSearchEngine) listActive(ctx context.Context, limit, offset int) (*bookingDomain.Page, error) {
	var total int64
	var models []BookingModel

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.db.WithContext(gctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := e.db.WithContext(gctx).
			Order("created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&models).Error; err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]bookingDomain.Record, len(models))
	for i := range models {
		records[i] = activeToRecord(&models[i])
	}

	return &bookingDomain.Page{Total: total, Limit: limit, Offset: offset, Data: records}, nil
}

func (e *GormSearchEngine) searchUnion(ctx context.Context, query string, limit, offset int) (*bookingDomain.Page, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS matches", unionSelect)
	dataSQL := fmt.Sprintf(
		"SELECT * FROM (%s) AS matches ORDER BY created_at DESC LIMIT @limit OFFSET @offset",
		unionSelect,
	)

	var total int64
	var rows []recordRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		args := map[string]interface{}{"pattern": pattern}
		if err := e.db.WithContext(gctx).Raw(countSQL, args).Scan(&total).Error; err != nil {
			return fmt.Errorf("failed to count matching bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		args := map[string]interface{}{"pattern": pattern, "limit": limit, "offset": offset}
		if err := e.db.WithContext(gctx).Raw(dataSQL, args).Scan(&rows).Error; err != nil {
			return fmt.Errorf("failed to search bookings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]bookingDomain.Record, len(rows))
	for i, row := range rows {
		records[i] = rowToRecord(&row)
	}

	return &bookingDomain.Page{Total: total, Limit: limit, Offset: offset, Data: records}, nil
}

// ListArchived returns a page of the archive partition ordered by archived_at
// descending.
func (e *GormSearchEngine) ListArchived(ctx context.Context, limit, offset int) (*bookingDomain.Page, error) {
	limit, offset = bookingDomain.ClampPage(limit, offset)

	var total int64
	var models []ArchivedBookingModel

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.db.WithContext(gctx).Model(&ArchivedBookingModel{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count archived bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := e.db.WithContext(gctx).
			Order("archived_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&models).Error; err != nil {
			return fmt.Errorf("failed to list archived bookings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]bookingDomain.Record, len(models))
	for i := range models {
		records[i] = archivedToRecord(&models[i])
	}

	return &bookingDomain.Page{Total: total, Limit: limit, Offset: offset, Data: records}, nil
}

func rowToRecord(row *recordRow) bookingDomain.Record {
	return bookingDomain.Record{
		ID:               row.ID,
		OriginalID:       row.OriginalID,
		TrackingID:       row.TrackingID,
		CustomerName:     row.CustomerName,
		Email:            row.Email,
		Phone:            row.Phone,
		DeviceType:       row.DeviceType,
		IssueDescription: row.IssueDescription,
		ServiceType:      row.ServiceType,
		Address:          row.Address,
		BookingDate:      row.BookingDate,
		BookingTime:      row.BookingTime,
		Status:           bookingDomain.Status(row.Status),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		ArchivedAt:       row.ArchivedAt,
	}
}
