package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Infinite-Tech-Repair/service-repair/internal/application"
	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// fakeStore is an in-memory Repository, Archiver, and SearchEngine backing
// the HTTP tests.
type fakeStore struct {
	nextID   uint64
	active   map[uint64]*bookingDomain.Booking
	archived []bookingDomain.Record
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, active: map[uint64]*bookingDomain.Booking{}}
}

func (f *fakeStore) Create(_ context.Context, b *bookingDomain.Booking) error {
	if f.failWith != nil {
		return f.failWith
	}
	b.SetID(f.nextID)
	f.active[f.nextID] = b
	f.nextID++
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id uint64) (*bookingDomain.Booking, error) {
	b, ok := f.active[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", "by id")
	}
	return b, nil
}

func (f *fakeStore) FindByTrackingIDOrID(_ context.Context, identifier string) (*bookingDomain.Booking, error) {
	for _, b := range f.active {
		if b.TrackingID() == identifier {
			return b, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", identifier)
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint64, status bookingDomain.Status, at time.Time) error {
	b, ok := f.active[id]
	if !ok {
		return domain.NewNotFoundError("Booking", "by id")
	}
	f.active[id] = bookingDomain.Reconstruct(
		b.ID(), b.TrackingID(), b.CustomerName(), b.Email(), b.Phone(),
		b.DeviceType(), b.IssueDescription(), b.ServiceType(), b.Address(),
		b.BookingDate(), b.BookingTime(), b.Images(), status, b.CreatedAt(), &at,
	)
	return nil
}

func (f *fakeStore) Archive(_ context.Context, id uint64) (*bookingDomain.Record, error) {
	b, ok := f.active[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", "by id")
	}
	delete(f.active, id)
	now := time.Now().UTC()
	origID := b.ID()
	rec := bookingDomain.Record{
		ID:           uint64(len(f.archived) + 1),
		OriginalID:   &origID,
		TrackingID:   b.TrackingID(),
		CustomerName: b.CustomerName(),
		Email:        b.Email(),
		DeviceType:   b.DeviceType(),
		ServiceType:  b.ServiceType(),
		Status:       b.Status(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
		ArchivedAt:   &now,
	}
	f.archived = append(f.archived, rec)
	return &rec, nil
}

func (f *fakeStore) List(_ context.Context, query string, limit, offset int) (*bookingDomain.Page, error) {
	limit, offset = bookingDomain.ClampPage(limit, offset)
	var data []bookingDomain.Record
	for _, b := range f.active {
		data = append(data, bookingDomain.Record{
			ID:           b.ID(),
			TrackingID:   b.TrackingID(),
			CustomerName: b.CustomerName(),
			Email:        b.Email(),
			DeviceType:   b.DeviceType(),
			ServiceType:  b.ServiceType(),
			Status:       b.Status(),
			CreatedAt:    b.CreatedAt(),
		})
	}
	if data == nil {
		data = []bookingDomain.Record{}
	}
	return &bookingDomain.Page{Total: int64(len(data)), Limit: limit, Offset: offset, Data: data}, nil
}

func (f *fakeStore) ListArchived(_ context.Context, limit, offset int) (*bookingDomain.Page, error) {
	limit, offset = bookingDomain.ClampPage(limit, offset)
	data := f.archived
	if data == nil {
		data = []bookingDomain.Record{}
	}
	return &bookingDomain.Page{Total: int64(len(data)), Limit: limit, Offset: offset, Data: data}, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyCreated(bookingDomain.Summary) {}

func (noopNotifier) NotifyStatusChanged(bookingDomain.Summary, bookingDomain.Status) {}

func newTestRouter(t *testing.T, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := application.NewBookingService(store, store, store, noopNotifier{}, nil, nil, zaptest.NewLogger(t))
	router := gin.New()
	NewBookingHandler(svc).RegisterRoutes(&router.RouterGroup)
	NewAdminHandler(svc).RegisterRoutes(&router.RouterGroup)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createBooking(t *testing.T, router *gin.Engine) (uint64, string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]interface{}{
		"customerName": "Alice Tan",
		"email":        "alice@example.com",
		"deviceType":   "MacBook Pro 2021",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	return uint64(body["dbId"].(float64)), body["trackingId"].(string)
}

func TestCreateBookingEndpoint(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]interface{}{
		"customerName": "Alice Tan",
		"email":        "alice@example.com",
		"deviceType":   "MacBook Pro 2021",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Booking confirmed successfully", body["message"])
	assert.Regexp(t, `^TR-\d{4}$`, body["trackingId"])
	assert.NotZero(t, body["dbId"])
}

func TestCreateBookingEndpoint_MissingField(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]interface{}{
		"customerName": "Alice Tan",
		"deviceType":   "MacBook Pro 2021",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "email")
}

func TestCreateBookingEndpoint_MalformedJSON(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestCreateBookingEndpoint_Conflict(t *testing.T) {
	store := newFakeStore()
	store.failWith = domain.NewConflictError("tracking id TR-1234 already exists")
	router := newTestRouter(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]interface{}{
		"customerName": "Alice Tan",
		"email":        "alice@example.com",
		"deviceType":   "MacBook Pro 2021",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "database insertion failed", body["error"])
}

func TestTrackBookingEndpoint(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(t, store)
	_, trackingID := createBooking(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/bookings/"+trackingID, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["found"])
	assert.Equal(t, trackingID, body["trackingId"])
	assert.Equal(t, "Alice Tan", body["customer"])
	assert.Equal(t, "Booked", body["status"])
}

func TestTrackBookingEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	w := doJSON(t, router, http.MethodGet, "/api/bookings/TR-0000", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "TR-0000")
}
