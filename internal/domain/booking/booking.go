package booking

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
)

// DefaultServiceType is applied when the intake request omits a service type.
const DefaultServiceType = "Drop-off"

// Intake holds the customer-supplied fields for a new repair booking.
type Intake struct {
	CustomerName     string   `json:"customerName"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	DeviceType       string   `json:"deviceType"`
	IssueDescription string   `json:"issueDescription"`
	ServiceType      string   `json:"serviceType"`
	Address          string   `json:"address"`
	BookingDate      string   `json:"bookingDate"`
	BookingTime      string   `json:"bookingTime"`
	Images           []string `json:"images"`
}

// Booking is the aggregate root for a repair job on the active partition.
type Booking struct {
	id               uint64
	trackingID       string
	customerName     string
	email            string
	phone            string
	deviceType       string
	issueDescription string
	serviceType      string
	address          string
	bookingDate      string
	bookingTime      string
	images           []string
	status           Status
	createdAt        time.Time
	updatedAt        *time.Time
}

// generateTrackingID draws a tracking code in the format "TR-NNNN" from the
// 1000-9999 range. The draw is uniform and unchecked against the store, so a
// collision surfaces as a unique-constraint failure on insert.
func generateTrackingID() string {
	return fmt.Sprintf("TR-%04d", 1000+rand.IntN(9000))
}

// NewBooking creates a new Booking with status=Booked from intake fields.
func NewBooking(in Intake) (*Booking, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, domain.NewValidationError("customerName is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if strings.TrimSpace(in.DeviceType) == "" {
		return nil, domain.NewValidationError("deviceType is required")
	}

	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = DefaultServiceType
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	return &Booking{
		trackingID:       generateTrackingID(),
		customerName:     in.CustomerName,
		email:            in.Email,
		phone:            in.Phone,
		deviceType:       in.DeviceType,
		issueDescription: in.IssueDescription,
		serviceType:      serviceType,
		address:          in.Address,
		bookingDate:      in.BookingDate,
		bookingTime:      in.BookingTime,
		images:           images,
		status:           StatusBooked,
		createdAt:        time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uint64,
	trackingID string,
	customerName string,
	email string,
	phone string,
	deviceType string,
	issueDescription string,
	serviceType string,
	address string,
	bookingDate string,
	bookingTime string,
	images []string,
	status Status,
	createdAt time.Time,
	updatedAt *time.Time,
) *Booking {
	return &Booking{
		id:               id,
		trackingID:       trackingID,
		customerName:     customerName,
		email:            email,
		phone:            phone,
		deviceType:       deviceType,
		issueDescription: issueDescription,
		serviceType:      serviceType,
		address:          address,
		bookingDate:      bookingDate,
		bookingTime:      bookingTime,
		images:           images,
		status:           status,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the store-assigned surrogate key, zero before insertion.
func (b *Booking) ID() uint64 { return b.id }

// TrackingID returns the customer-facing tracking code.
func (b *Booking) TrackingID() string { return b.trackingID }

// CustomerName returns the customer's name.
func (b *Booking) CustomerName() string { return b.customerName }

// Email returns the customer's email address.
func (b *Booking) Email() string { return b.email }

// Phone returns the customer's phone number, possibly empty.
func (b *Booking) Phone() string { return b.phone }

// DeviceType returns the free-text device description.
func (b *Booking) DeviceType() string { return b.deviceType }

// IssueDescription returns the reported issue.
func (b *Booking) IssueDescription() string { return b.issueDescription }

// ServiceType returns the service type ("Drop-off" by default).
func (b *Booking) ServiceType() string { return b.serviceType }

// Address returns the physical location reference.
func (b *Booking) Address() string { return b.address }

// BookingDate returns the scheduled date, possibly empty.
func (b *Booking) BookingDate() string { return b.bookingDate }

// BookingTime returns the scheduled time slot, possibly empty.
func (b *Booking) BookingTime() string { return b.bookingTime }

// Images returns the ordered attachment references.
func (b *Booking) Images() []string { return b.images }

// Status returns the current repair status.
func (b *Booking) Status() Status { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last status-change time, nil before the first update.
func (b *Booking) UpdatedAt() *time.Time { return b.updatedAt }

// SetID records the store-assigned key after insertion.
func (b *Booking) SetID(id uint64) { b.id = id }

// Summary returns the read-only projection used for tracking lookups and
// notification payloads.
func (b *Booking) Summary() Summary {
	return Summary{
		ID:           b.id,
		TrackingID:   b.trackingID,
		CustomerName: b.customerName,
		Email:        b.email,
		DeviceType:   b.deviceType,
		BookingDate:  b.bookingDate,
		BookingTime:  b.bookingTime,
		Status:       b.status,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.updatedAt,
	}
}

// Summary is a read-only projection of a booking's customer-visible fields.
type Summary struct {
	ID           uint64
	TrackingID   string
	CustomerName string
	Email        string
	DeviceType   string
	BookingDate  string
	BookingTime  string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
