package notification

import (
	"bytes"
	"fmt"
	"html/template"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// AppName is the sender-facing brand used in subjects and bodies.
const AppName = "Infinite Tech Repair"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h3>Repair Booking Confirmed: {{.TrackingID}}</h3>
  <p>Dear {{.CustomerName}},</p>
  <p>Thank you for choosing {{.AppName}} for your device repair. Your booking has been confirmed.</p>
  <table cellpadding="6">
    <tr><td>Tracking ID</td><td><strong>{{.TrackingID}}</strong></td></tr>
    <tr><td>Device</td><td>{{.DeviceType}}</td></tr>
    {{if .BookingDate}}<tr><td>Scheduled slot</td><td>{{.BookingDate}} at {{.BookingTime}}</td></tr>{{end}}
  </table>
  <p>You can track the live status of your repair anytime using your Tracking ID.</p>
  <p>Best regards,<br>The {{.AppName}} Team</p>
</div>`))

var statusUpdateTmpl = template.Must(template.New("status_update").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h3>Repair Status Update: {{.TrackingID}}</h3>
  <p>Dear {{.CustomerName}},</p>
  <p>Your {{.DeviceType}} repair is now <strong>{{.NewStatus}}</strong>.</p>
  <p>Track the latest status anytime using your Tracking ID: <strong>{{.TrackingID}}</strong>.</p>
  <p>Best regards,<br>The {{.AppName}} Team</p>
</div>`))

type templateData struct {
	AppName      string
	TrackingID   string
	CustomerName string
	DeviceType   string
	BookingDate  string
	BookingTime  string
	NewStatus    string
}

// RenderConfirmation builds the booking-confirmation message for a summary.
func RenderConfirmation(s bookingDomain.Summary) (Message, error) {
	var body bytes.Buffer
	err := confirmationTmpl.Execute(&body, templateData{
		AppName:      AppName,
		TrackingID:   s.TrackingID,
		CustomerName: s.CustomerName,
		DeviceType:   s.DeviceType,
		BookingDate:  s.BookingDate,
		BookingTime:  s.BookingTime,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render confirmation body: %w", err)
	}

	return Message{
		To:      s.Email,
		Subject: fmt.Sprintf("Your Repair Booking with %s is Confirmed! (ID: %s)", AppName, s.TrackingID),
		HTML:    body.String(),
	}, nil
}

// RenderStatusUpdate builds the status-change message for a summary.
func RenderStatusUpdate(s bookingDomain.Summary, newStatus bookingDomain.Status) (Message, error) {
	var body bytes.Buffer
	err := statusUpdateTmpl.Execute(&body, templateData{
		AppName:      AppName,
		TrackingID:   s.TrackingID,
		CustomerName: s.CustomerName,
		DeviceType:   s.DeviceType,
		NewStatus:    newStatus.String(),
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render status update body: %w", err)
	}

	return Message{
		To:      s.Email,
		Subject: fmt.Sprintf("%s Update: Your Repair is Now %s (ID: %s)", AppName, newStatus, s.TrackingID),
		HTML:    body.String(),
	}, nil
}
