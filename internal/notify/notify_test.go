package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nobih83/bn-storefront/internal/orders"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		target string
		viewer string
		want   bool
	}{
		{"broadcast", TargetAll, "U-1", true},
		{"broadcast to guest", TargetAll, "guest", true},
		{"own notification", "U-1", "U-1", true},
		{"someone else's", "U-2", "U-1", false},
		{"guest sees guest", "guest", "guest", true},
		{"user does not see guest", "guest", "U-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{Target: tt.target}
			assert.Equal(t, tt.want, Visible(n, tt.viewer))
		})
	}
}

func TestUnreadCount(t *testing.T) {
	list := []Notification{
		{ID: "1", Target: TargetAll, Read: false},
		{ID: "2", Target: "U-1", Read: false},
		{ID: "3", Target: "U-1", Read: true},
		{ID: "4", Target: "U-2", Read: false},
	}
	assert.Equal(t, 2, UnreadCount(list, "U-1"))
	assert.Equal(t, 1, UnreadCount(list, "U-3"))
	assert.Equal(t, 0, UnreadCount(nil, "U-1"))
}

func TestStatusMessage(t *testing.T) {
	msg := StatusMessage("BN-5678-1234", orders.StatusProcessing)
	assert.Equal(t, "Your order #BN-5678-1234 is now processing.", msg)

	// shipped carries the tracking hint
	msg = StatusMessage("BN-5678-1234", orders.StatusShipped)
	assert.Equal(t, "Your order #BN-5678-1234 is now shipped. Track it in your dashboard!", msg)

	msg = StatusMessage("BN-5678-1234", orders.StatusDelivered)
	assert.Equal(t, "Your order #BN-5678-1234 is now delivered.", msg)
}
