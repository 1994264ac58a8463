package booking

import (
	"fmt"
	"strings"

	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
)

// Status represents the current state of a repair job.
type Status string

const (
	StatusBooked     Status = "Booked"
	StatusDiagnosing Status = "Diagnosing"
	StatusRepairing  Status = "Repairing"
	StatusReady      Status = "Ready"
	StatusCompleted  Status = "Completed"
)

// AllStatuses lists every valid status in the intended progression order.
// Only set membership is enforced on writes: an administrator may move a job
// to any status from any other, and Completed does not block further writes.
var AllStatuses = []Status{
	StatusBooked,
	StatusDiagnosing,
	StatusRepairing,
	StatusReady,
	StatusCompleted,
}

// IsValid returns true if the status is a member of the fixed status set.
func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning a validation error
// that enumerates the allowed set when the value is not a member.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", domain.NewValidationError(
			fmt.Sprintf("invalid status %q. Allowed: %s", s, statusList()),
		)
	}
	return status, nil
}

func statusList() string {
	names := make([]string, len(AllStatuses))
	for i, s := range AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
