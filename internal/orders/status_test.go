package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(Status("bogus"), StatusShipped))
	assert.False(t, CanTransition(StatusPending, Status("bogus")))
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		st, ok := ParseStatus(s)
		assert.True(t, ok)
		assert.Equal(t, Status(s), st)
	}
	_, ok := ParseStatus("returned")
	assert.False(t, ok)
	_, ok = ParseStatus("PENDING")
	assert.False(t, ok)
}
