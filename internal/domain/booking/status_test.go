package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
)

func TestParseStatus_AllowedValues(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestParseStatus_Rejected(t *testing.T) {
	for _, raw := range []string{"", "booked", "BOOKED", "Shipped", "Done", " Ready"} {
		_, err := ParseStatus(raw)
		require.Error(t, err, "value %q", raw)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	}
}

func TestParseStatus_ErrorListsAllowedValues(t *testing.T) {
	_, err := ParseStatus("Lost")
	require.Error(t, err)
	for _, s := range AllStatuses {
		assert.Contains(t, err.Error(), s.String())
	}
}

func TestParseStatus_OrderIndependent(t *testing.T) {
	// Any member is accepted regardless of the booking's current position
	// in the repair flow; Completed does not terminate the record.
	from := StatusCompleted
	to, err := ParseStatus(StatusBooked.String())
	require.NoError(t, err)
	assert.NotEqual(t, from, to)
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		name                 string
		limit, offset        int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, DefaultLimit, 0},
		{"negative limit", -5, 0, DefaultLimit, 0},
		{"over cap", 500, 0, MaxLimit, 0},
		{"at cap", 100, 40, 100, 40},
		{"negative offset", 10, -3, 10, 0},
		{"passthrough", 25, 50, 25, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := ClampPage(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
