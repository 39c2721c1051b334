package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/nobih83/bn-storefront/internal/kafka"
	"github.com/nobih83/bn-storefront/internal/orders"
	"github.com/nobih83/bn-storefront/internal/redisx"
)

// Ledger persists notifications.
type Ledger interface {
	Append(ctx context.Context, n Notification) (Notification, error)
}

// Deduper remembers which event ids were already turned into
// notifications.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// RedisDedup keys processed event ids per consuming service for the
// dedup window.
type RedisDedup struct {
	Redis       *redis.Client
	ServiceName string
}

func (d *RedisDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	return redisx.Exists(ctx, d.Redis, fmt.Sprintf(redisx.KeyDedup, d.ServiceName, eventID))
}

func (d *RedisDedup) Mark(ctx context.Context, eventID string) error {
	return d.Redis.Set(ctx, fmt.Sprintf(redisx.KeyDedup, d.ServiceName, eventID), "1", redisx.TTLDedup).Err()
}

// Fanout turns order events into persisted notifications. Delivery is
// at-least-once: an event is marked processed only after its
// notification is written, so a failed write leaves the event eligible
// for redelivery.
type Fanout struct {
	Ledger Ledger
	Dedup  Deduper
}

// HandleOrderPlaced writes the order confirmation for the placing user
// (or the guest sentinel).
func (f *Fanout) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}
	seen, err := f.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}
	_, err = f.Ledger.Append(ctx, Notification{
		Target: p.UserID,
		Title:  "Order Confirmation",
		Message: fmt.Sprintf("Your order #%s has been successfully placed. "+
			"We will start processing it shortly. Thank you for shopping with Bismillah nashwa!", p.OrderID),
	})
	if err != nil {
		return err
	}
	f.mark(ctx, env.EventID)
	return nil
}

// HandleStatusChanged announces a status transition to the order's owner.
func (f *Fanout) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil
	}
	seen, err := f.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}
	_, err = f.Ledger.Append(ctx, Notification{
		Target:  p.UserID,
		Title:   "Order " + strings.ToUpper(string(p.Status)),
		Message: StatusMessage(p.OrderID, p.Status),
	})
	if err != nil {
		return err
	}
	f.mark(ctx, env.EventID)
	return nil
}

// StatusMessage is the user-facing copy for a status change.
func StatusMessage(orderID string, status orders.Status) string {
	msg := fmt.Sprintf("Your order #%s is now %s.", orderID, status)
	if status == orders.StatusShipped {
		msg += " Track it in your dashboard!"
	}
	return msg
}

// mark is best effort: the notification is already written, so a failed
// mark only risks a duplicate on redelivery, never a loss.
func (f *Fanout) mark(ctx context.Context, eventID string) {
	if err := f.Dedup.Mark(ctx, eventID); err != nil {
		log.Printf("dedup mark %s: %v", eventID, err)
	}
}
