package booking

import (
	"context"
	"time"
)

// Record is the common column projection shared by both partitions. For rows
// sourced from the active partition OriginalID and ArchivedAt are nil.
type Record struct {
	ID               uint64     `json:"id"`
	OriginalID       *uint64    `json:"originalId,omitempty"`
	TrackingID       string     `json:"trackingId"`
	CustomerName     string     `json:"customerName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	DeviceType       string     `json:"deviceType"`
	IssueDescription string     `json:"issueDescription,omitempty"`
	ServiceType      string     `json:"serviceType"`
	Address          string     `json:"address,omitempty"`
	BookingDate      string     `json:"bookingDate,omitempty"`
	BookingTime      string     `json:"bookingTime,omitempty"`
	Status           Status     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
	ArchivedAt       *time.Time `json:"archivedAt"`
}

// Repository owns CRUD and lifecycle queries against the active partition.
type Repository interface {
	// Create persists a new booking and records the store-assigned key on
	// the aggregate. A tracking-id collision surfaces as a conflict error.
	Create(ctx context.Context, b *Booking) error

	// FindByID retrieves an active booking by its surrogate key.
	FindByID(ctx context.Context, id uint64) (*Booking, error)

	// FindByTrackingIDOrID looks up by exact tracking id, or by surrogate
	// key when the identifier parses as one.
	FindByTrackingIDOrID(ctx context.Context, identifier string) (*Booking, error)

	// UpdateStatus writes status and updatedAt on the row identified by id.
	// Zero rows affected reports not-found; the caller has already read the
	// row, so a not-found here means a concurrent archival won the race.
	UpdateStatus(ctx context.Context, id uint64, status Status, at time.Time) error
}

// Archiver migrates one booking from the active to the archive partition.
type Archiver interface {
	// Archive copies the active row into the archive partition and deletes
	// the original, all within one transaction. It returns the archived
	// record, or a not-found error when the booking is absent (or already
	// archived).
	Archive(ctx context.Context, id uint64) (*Record, error)
}

// SearchEngine composes paginated reads over one or both partitions.
type SearchEngine interface {
	// List returns active bookings ordered by creation time descending.
	// When query is non-empty the result is the union of both partitions,
	// matched case-insensitively on customer name, email, and tracking id,
	// globally ordered and sliced after the union.
	List(ctx context.Context, query string, limit, offset int) (*Page, error)

	// ListArchived returns archived bookings ordered by archival time
	// descending.
	ListArchived(ctx context.Context, limit, offset int) (*Page, error)
}
