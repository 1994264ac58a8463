package notification

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// channelMailer records every send attempt and signals on a channel.
type channelMailer struct {
	mu    sync.Mutex
	sent  []Message
	errs  int
	fail  bool
	avail chan struct{}
}

func newChannelMailer(fail bool) *channelMailer {
	return &channelMailer{fail: fail, avail: make(chan struct{}, queueSize)}
}

func (m *channelMailer) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.avail <- struct{}{} }()
	if m.fail {
		m.errs++
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *channelMailer) waitForAttempt(t *testing.T) {
	t.Helper()
	select {
	case <-m.avail:
	case <-time.After(2 * time.Second):
		t.Fatal("no send attempt observed")
	}
}

func (m *channelMailer) attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent) + m.errs
}

func testSummary() bookingDomain.Summary {
	return bookingDomain.Summary{
		ID:           5,
		TrackingID:   "TR-5151",
		CustomerName: "Alice Tan",
		Email:        "alice@example.com",
		DeviceType:   "MacBook Pro 2021",
		BookingDate:  "2026-09-01",
		BookingTime:  "10:00",
		Status:       bookingDomain.StatusBooked,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestNotifyCreated_DeliversMessage(t *testing.T) {
	mailer := newChannelMailer(false)
	d := NewDispatcher(mailer, zaptest.NewLogger(t))
	defer d.Close()

	d.NotifyCreated(testSummary())
	mailer.waitForAttempt(t)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "TR-5151")
	assert.Contains(t, mailer.sent[0].HTML, "Alice Tan")
}

func TestNotifyStatusChanged_DeliversMessage(t *testing.T) {
	mailer := newChannelMailer(false)
	d := NewDispatcher(mailer, zaptest.NewLogger(t))
	defer d.Close()

	d.NotifyStatusChanged(testSummary(), bookingDomain.StatusReady)
	mailer.waitForAttempt(t)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Subject, "Ready")
	assert.Contains(t, mailer.sent[0].HTML, "Ready")
}

func TestSendFailure_NeverReachesCaller(t *testing.T) {
	mailer := newChannelMailer(true)
	d := NewDispatcher(mailer, zaptest.NewLogger(t))

	// Neither call blocks or panics when every send fails.
	d.NotifyCreated(testSummary())
	d.NotifyStatusChanged(testSummary(), bookingDomain.StatusRepairing)

	mailer.waitForAttempt(t)
	mailer.waitForAttempt(t)
	d.Close()

	// At-most-once: one attempt per message, no retries queued.
	assert.Equal(t, 2, mailer.attempts())
}

func TestNotifyAfterClose_Drops(t *testing.T) {
	mailer := newChannelMailer(false)
	d := NewDispatcher(mailer, zaptest.NewLogger(t))
	d.Close()

	d.NotifyCreated(testSummary())

	assert.Zero(t, mailer.attempts())
}

func TestClose_DrainsQueue(t *testing.T) {
	mailer := newChannelMailer(false)
	d := NewDispatcher(mailer, zaptest.NewLogger(t))

	for i := 0; i < 5; i++ {
		d.NotifyCreated(testSummary())
	}
	d.Close()

	assert.Equal(t, 5, mailer.attempts())
}
