package notify

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/nobih83/bn-storefront/internal/kafka"
	"github.com/nobih83/bn-storefront/internal/orders"
)

type ledgerStub struct {
	appended []Notification
	failNext int
}

func (l *ledgerStub) Append(_ context.Context, n Notification) (Notification, error) {
	if l.failNext > 0 {
		l.failNext--
		return Notification{}, errors.New("insert failed")
	}
	l.appended = append(l.appended, n)
	return n, nil
}

type dedupStub struct{ seen map[string]bool }

func (d *dedupStub) Seen(_ context.Context, id string) (bool, error) { return d.seen[id], nil }
func (d *dedupStub) Mark(_ context.Context, id string) error         { d.seen[id] = true; return nil }

func placedMessage(eventID string) kafkago.Message {
	env := orders.Envelope{
		EventID:   eventID,
		EventType: orders.EventOrderPlaced,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID: "BN-5678-1234", UserID: "U-1", Total: 1400,
		}),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func statusMessage(eventID string, status orders.Status) kafkago.Message {
	env := orders.Envelope{
		EventID:   eventID,
		EventType: orders.EventOrderStatusChanged,
		Payload: kafkax.MustMarshal(orders.OrderStatusChangedPayload{
			OrderID: "BN-5678-1234", UserID: "U-1", Status: status,
		}),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandleOrderPlacedWritesOnce(t *testing.T) {
	ledger := &ledgerStub{}
	dedup := &dedupStub{seen: map[string]bool{}}
	f := &Fanout{Ledger: ledger, Dedup: dedup}

	m := placedMessage("ev-1")
	require.NoError(t, f.HandleOrderPlaced(context.Background(), m))
	require.Len(t, ledger.appended, 1)
	assert.Equal(t, "U-1", ledger.appended[0].Target)
	assert.Equal(t, "Order Confirmation", ledger.appended[0].Title)

	// redelivery of a processed event is a no-op
	require.NoError(t, f.HandleOrderPlaced(context.Background(), m))
	assert.Len(t, ledger.appended, 1)
}

func TestHandleOrderPlacedFailedInsertStaysRedeliverable(t *testing.T) {
	ledger := &ledgerStub{failNext: 1}
	dedup := &dedupStub{seen: map[string]bool{}}
	f := &Fanout{Ledger: ledger, Dedup: dedup}

	m := placedMessage("ev-2")
	require.Error(t, f.HandleOrderPlaced(context.Background(), m))

	// a failed insert must not mark the event processed
	assert.False(t, dedup.seen["ev-2"])
	assert.Empty(t, ledger.appended)

	// redelivery writes the notification exactly once
	require.NoError(t, f.HandleOrderPlaced(context.Background(), m))
	require.Len(t, ledger.appended, 1)
	assert.True(t, dedup.seen["ev-2"])
}

func TestHandleStatusChangedFailedInsertStaysRedeliverable(t *testing.T) {
	ledger := &ledgerStub{failNext: 1}
	dedup := &dedupStub{seen: map[string]bool{}}
	f := &Fanout{Ledger: ledger, Dedup: dedup}

	m := statusMessage("ev-3", orders.StatusShipped)
	require.Error(t, f.HandleStatusChanged(context.Background(), m))
	assert.False(t, dedup.seen["ev-3"])

	require.NoError(t, f.HandleStatusChanged(context.Background(), m))
	require.Len(t, ledger.appended, 1)
	assert.Equal(t, "Order SHIPPED", ledger.appended[0].Title)
	assert.Equal(t, "Your order #BN-5678-1234 is now shipped. Track it in your dashboard!", ledger.appended[0].Message)
}

func TestHandlersIgnoreForeignEventTypes(t *testing.T) {
	ledger := &ledgerStub{}
	dedup := &dedupStub{seen: map[string]bool{}}
	f := &Fanout{Ledger: ledger, Dedup: dedup}

	require.NoError(t, f.HandleOrderPlaced(context.Background(), statusMessage("ev-4", orders.StatusShipped)))
	require.NoError(t, f.HandleStatusChanged(context.Background(), placedMessage("ev-5")))
	assert.Empty(t, ledger.appended)
	assert.Empty(t, dedup.seen)
}
