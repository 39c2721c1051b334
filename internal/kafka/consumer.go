package kafka

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler must return nil only when the message was processed and the
// offset may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

type Consumer struct {
	reader  *kafka.Reader
	workers int
}

func NewConsumer(brokers []string, group, topic string, workers int) *Consumer {
	if workers < 1 {
		workers = 1
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  group,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10 << 20,
		}),
		workers: workers,
	}
}

// Start fetches messages and fans them out to the worker pool. Offsets
// are committed per message, only after the handler succeeds.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.reader.Close()

	errs := make(chan error, c.workers)
	pool := newWorkerPool(c.workers, 4*c.workers, func(m kafka.Message) {
		if err := h(ctx, m); err != nil {
			report(errs, err)
			return
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			report(errs, err)
		}
	})

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			pool.stop()
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if !pool.dispatch(ctx, m) {
			pool.stop()
			return nil
		}

		// drain handler errors without blocking the fetch loop
		select {
		case e := <-errs:
			log.Printf("consume %s: %v", c.reader.Config().Topic, e)
			time.Sleep(250 * time.Millisecond)
		default:
		}
	}
}

// report never blocks: when the buffer is full the error is logged
// directly, so workers can always finish even with no drain running.
func report(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
		log.Printf("consume: %v", err)
	}
}

type workerPool struct {
	jobs chan kafka.Message
	wg   sync.WaitGroup
}

func newWorkerPool(workers, buf int, run func(kafka.Message)) *workerPool {
	p := &workerPool{jobs: make(chan kafka.Message, buf)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for m := range p.jobs {
				run(m)
			}
		}()
	}
	return p
}

// dispatch queues a message, reporting false when the context ends
// before a slot frees up.
func (p *workerPool) dispatch(ctx context.Context, m kafka.Message) bool {
	select {
	case p.jobs <- m:
		return true
	case <-ctx.Done():
		return false
	}
}

// stop closes intake and waits for in-flight messages to finish.
func (p *workerPool) stop() {
	close(p.jobs)
	p.wg.Wait()
}
