package notification

import (
	"sync"

	"go.uber.org/zap"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

const queueSize = 64

type job struct {
	kind       string
	trackingID string
	msg        Message
}

// Dispatcher delivers customer notifications out-of-band. Notify calls hand
// the rendered message to a background worker and return immediately; send
// outcomes are observed only through the log, keyed by tracking id. Delivery
// is at-most-one-attempt: a failed send is logged and dropped.
type Dispatcher struct {
	mailer Mailer
	logger *zap.Logger

	queue     chan job
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a Dispatcher and starts its delivery worker.
func NewDispatcher(mailer Mailer, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		logger: logger,
		queue:  make(chan job, queueSize),
		done:   make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// NotifyCreated schedules a booking-confirmation message. It never blocks
// and never returns an error to the caller.
func (d *Dispatcher) NotifyCreated(s bookingDomain.Summary) {
	msg, err := RenderConfirmation(s)
	if err != nil {
		d.logger.Error("failed to render confirmation notification",
			zap.String("tracking_id", s.TrackingID),
			zap.Error(err),
		)
		return
	}
	d.enqueue(job{kind: "confirmation", trackingID: s.TrackingID, msg: msg})
}

// NotifyStatusChanged schedules a status-update message. It never blocks and
// never returns an error to the caller.
func (d *Dispatcher) NotifyStatusChanged(s bookingDomain.Summary, newStatus bookingDomain.Status) {
	msg, err := RenderStatusUpdate(s, newStatus)
	if err != nil {
		d.logger.Error("failed to render status update notification",
			zap.String("tracking_id", s.TrackingID),
			zap.Error(err),
		)
		return
	}
	d.enqueue(job{kind: "status_update", trackingID: s.TrackingID, msg: msg})
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case <-d.done:
		d.logger.Warn("dispatcher closed, dropping message",
			zap.String("kind", j.kind),
			zap.String("tracking_id", j.trackingID),
		)
		return
	default:
	}

	select {
	case d.queue <- j:
	default:
		// Best-effort delivery: when the queue is saturated the message is
		// dropped rather than blocking the triggering operation.
		d.logger.Warn("notification queue full, dropping message",
			zap.String("kind", j.kind),
			zap.String("tracking_id", j.trackingID),
		)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case j := <-d.queue:
			d.send(j)
		case <-d.done:
			// Drain what was queued before shutdown, then stop.
			for {
				select {
				case j := <-d.queue:
					d.send(j)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) send(j job) {
	if err := d.mailer.Send(j.msg); err != nil {
		d.logger.Error("failed to send notification",
			zap.String("kind", j.kind),
			zap.String("tracking_id", j.trackingID),
			zap.Error(err),
		)
		return
	}
	d.logger.Info("notification sent",
		zap.String("kind", j.kind),
		zap.String("tracking_id", j.trackingID),
	)
}

// Close stops accepting new messages, waits for queued sends to finish, and
// stops the worker. The queue channel itself is never closed so a racing
// enqueue can never panic.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}
