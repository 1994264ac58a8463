package repository

import (
	"encoding/json"
	"fmt"
	"time"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// BookingModel is the GORM model for the active partition.
type BookingModel struct {
	ID               uint64          `gorm:"primaryKey;autoIncrement"`
	TrackingID       string          `gorm:"uniqueIndex;not null;size:10"`
	CustomerName     string          `gorm:"not null;size:255"`
	Email            string          `gorm:"not null;size:255"`
	Phone            string          `gorm:"not null;size:50;default:''"`
	DeviceType       string          `gorm:"not null;size:255"`
	IssueDescription string          `gorm:"not null;type:text;default:''"`
	ServiceType      string          `gorm:"not null;size:50;default:'Drop-off'"`
	Address          string          `gorm:"not null;size:500;default:''"`
	BookingDate      string          `gorm:"not null;size:50;default:''"`
	BookingTime      string          `gorm:"not null;size:50;default:''"`
	Images           json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	Status           string          `gorm:"not null;size:20;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        *time.Time      `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// ArchivedBookingModel is the GORM model for the archive partition. Its
// primary key is distinct from the former active-partition key, which is
// preserved in OriginalID.
type ArchivedBookingModel struct {
	ID               uint64          `gorm:"primaryKey;autoIncrement"`
	OriginalID       uint64          `gorm:"not null;index"`
	TrackingID       string          `gorm:"not null;size:10;index"`
	CustomerName     string          `gorm:"not null;size:255"`
	Email            string          `gorm:"not null;size:255"`
	Phone            string          `gorm:"not null;size:50;default:''"`
	DeviceType       string          `gorm:"not null;size:255"`
	IssueDescription string          `gorm:"not null;type:text;default:''"`
	ServiceType      string          `gorm:"not null;size:50;default:'Drop-off'"`
	Address          string          `gorm:"not null;size:500;default:''"`
	BookingDate      string          `gorm:"not null;size:50;default:''"`
	BookingTime      string          `gorm:"not null;size:50;default:''"`
	Images           json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	Status           string          `gorm:"not null;size:20"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        *time.Time      `gorm:"autoUpdateTime:false"`
	ArchivedAt       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (ArchivedBookingModel) TableName() string {
	return "archived_bookings"
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) (*BookingModel, error) {
	imagesJSON, err := json.Marshal(b.Images())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}

	return &BookingModel{
		ID:               b.ID(),
		TrackingID:       b.TrackingID(),
		CustomerName:     b.CustomerName(),
		Email:            b.Email(),
		Phone:            b.Phone(),
		DeviceType:       b.DeviceType(),
		IssueDescription: b.IssueDescription(),
		ServiceType:      b.ServiceType(),
		Address:          b.Address(),
		BookingDate:      b.BookingDate(),
		BookingTime:      b.BookingTime(),
		Images:           imagesJSON,
		Status:           b.Status().String(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var images []string
	if len(m.Images) > 0 {
		if err := json.Unmarshal(m.Images, &images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}
	if images == nil {
		images = []string{}
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.TrackingID,
		m.CustomerName,
		m.Email,
		m.Phone,
		m.DeviceType,
		m.IssueDescription,
		m.ServiceType,
		m.Address,
		m.BookingDate,
		m.BookingTime,
		images,
		bookingDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func activeToRecord(m *BookingModel) bookingDomain.Record {
	return bookingDomain.Record{
		ID:               m.ID,
		TrackingID:       m.TrackingID,
		CustomerName:     m.CustomerName,
		Email:            m.Email,
		Phone:            m.Phone,
		DeviceType:       m.DeviceType,
		IssueDescription: m.IssueDescription,
		ServiceType:      m.ServiceType,
		Address:          m.Address,
		BookingDate:      m.BookingDate,
		BookingTime:      m.BookingTime,
		Status:           bookingDomain.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func archivedToRecord(m *ArchivedBookingModel) bookingDomain.Record {
	originalID := m.OriginalID
	archivedAt := m.ArchivedAt
	return bookingDomain.Record{
		ID:               m.ID,
		OriginalID:       &originalID,
		TrackingID:       m.TrackingID,
		CustomerName:     m.CustomerName,
		Email:            m.Email,
		Phone:            m.Phone,
		DeviceType:       m.DeviceType,
		IssueDescription: m.IssueDescription,
		ServiceType:      m.ServiceType,
		Address:          m.Address,
		BookingDate:      m.BookingDate,
		BookingTime:      m.BookingTime,
		Status:           bookingDomain.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		ArchivedAt:       &archivedAt,
	}
}

func archivedFromActive(m *BookingModel, archivedAt time.Time) ArchivedBookingModel {
	return ArchivedBookingModel{
		OriginalID:       m.ID,
		TrackingID:       m.TrackingID,
		CustomerName:     m.CustomerName,
		Email:            m.Email,
		Phone:            m.Phone,
		DeviceType:       m.DeviceType,
		IssueDescription: m.IssueDescription,
		ServiceType:      m.ServiceType,
		Address:          m.Address,
		BookingDate:      m.BookingDate,
		BookingTime:      m.BookingTime,
		Images:           m.Images,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		ArchivedAt:       archivedAt,
	}
}
