package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"
)

const (
	defaultBufferSize = 64
	sinkTimeout       = 5 * time.Second
)

// Sink delivers one notification to an output (log, webhook...).
type Sink interface {
	Send(ctx context.Context, n entities.Notification) error
}

// Dispatcher fans notifications out to its sinks from a single worker.
//
// Notify never blocks: when the buffer is full the notification is dropped
// and logged. Sink errors and panics are logged and never reach the caller.
type Dispatcher struct {
	mu     sync.RWMutex
	closed bool
	queue  chan entities.Notification
	sinks  []Sink
	done   chan struct{}
}

var _ interfaces.INotifier = (*Dispatcher)(nil)

func NewDispatcher(bufferSize int, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	d := &Dispatcher{
		queue: make(chan entities.Notification, bufferSize),
		sinks: sinks,
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Notify(_ context.Context, n entities.Notification) {
	if n.EmittedAt.IsZero() {
		n.EmittedAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("[notification][dispatcher] closed, dropping title=%q", n.Title)
		return
	}
	select {
	case d.queue <- n:
	default:
		log.Printf("[notification][dispatcher] buffer full, dropping title=%q", n.Title)
	}
}

// Close stops accepting notifications and waits for the queued ones to be
// delivered, or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		for _, s := range d.sinks {
			d.deliver(s, n)
		}
	}
}

func (d *Dispatcher) deliver(s Sink, n entities.Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[notification][dispatcher] sink panic title=%q panic=%v", n.Title, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()
	if err := s.Send(ctx, n); err != nil {
		log.Printf("[notification][dispatcher] sink error title=%q err=%v", n.Title, err)
	}
}
