package event

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/viant/afs"
	"github.com/viant/pact/service/messaging"
	qfs "github.com/viant/pact/service/messaging/fs"
	"github.com/viant/pact/service/messaging/memory"
)

// Service publishes negotiation events to a queue and optionally fans them
// out to a registered listener.
type Service struct {
	queue    messaging.Queue[Event]
	listener *Listener
}

// Publish places the event on the queue, stamping CreatedAt.
func (s *Service) Publish(ctx context.Context, event *Event) error {
	event.CreatedAt = time.Now()
	return s.queue.Publish(ctx, event)
}

// Queue exposes the underlying queue for external consumers.
func (s *Service) Queue() messaging.Queue[Event] {
	return s.queue
}

// SetListener installs a handler consuming events in the background; any
// previously installed listener is stopped first.
func (s *Service) SetListener(handler func(*Event)) {
	if s.listener != nil {
		s.listener.Stop()
	}
	s.listener = NewListener(s.queue, handler)
	s.listener.Start()
}

// New creates an event service backed by the named queue vendor.
func New(queueVendor messaging.Vendor, opts ...Option) (*Service, error) {
	options := newOptions(opts)
	switch queueVendor {
	case "memory", "":
		return &Service{queue: memory.NewQueue[Event](options.memoryConfig)}, nil
	case "fs":
		queue, err := qfs.NewQueue[Event](afs.New(), options.fsConfig)
		if err != nil {
			return nil, err
		}
		return &Service{queue: queue}, nil
	}
	return nil, fmt.Errorf("unsupported queue vendor: %s", queueVendor)
}

// Listener consumes events in a background goroutine and invokes the
// handler for each one.
type Listener struct {
	queue   messaging.Queue[Event]
	handler func(*Event)
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewListener creates a stopped listener.
func NewListener(queue messaging.Queue[Event], handler func(*Event)) *Listener {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener{queue: queue, handler: handler, ctx: ctx, cancel: cancel}
}

// Start begins consuming events until Stop is called.
func (l *Listener) Start() {
	go func() {
		for {
			msg, err := l.queue.Consume(l.ctx)
			if l.ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("error consuming event: %v", err)
				continue
			}
			if msg == nil {
				// fs-backed queues return nil when empty
				time.Sleep(50 * time.Millisecond)
				continue
			}
			if err := msg.Ack(); err != nil {
				log.Printf("error acknowledging event: %v", err)
			}
			l.handler(msg.T())
		}
	}()
}

// Stop terminates the background consumer.
func (l *Listener) Stop() {
	l.cancel()
}
