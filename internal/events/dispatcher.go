// Package events delivers token lifecycle events to audit sinks off the
// request path.
package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

const emitTimeout = 5 * time.Second

var _ model.EventPublisher = (*Dispatcher)(nil)

// Dispatcher buffers events and forwards them to a sink from one goroutine.
// When the buffer is full new events are dropped and counted.
type Dispatcher struct {
	sink      model.EventSink
	logger    *logger.Logger
	ch        chan model.TokenEvent
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewDispatcher(bufferSize int, sink model.EventSink, logger *logger.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		sink:   sink,
		logger: logger.With("component", "event_dispatcher"),
		ch:     make(chan model.TokenEvent, bufferSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.ch:
			d.emit(event)
		case <-d.done:
			for {
				select {
				case event := <-d.ch:
					d.emit(event)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) emit(event model.TokenEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()

	if err := d.sink.Emit(ctx, event); err != nil {
		d.logger.Error("Event dispatcher: failed to emit event",
			"event_id", event.ID,
			"type", string(event.Type),
			"error", err.Error())
	}
}

// Publish never blocks. Events published after Close are discarded.
func (d *Dispatcher) Publish(_ context.Context, event model.TokenEvent) {
	if d.closed.Load() {
		return
	}

	select {
	case d.ch <- event:
	case <-d.done:
	default:
		d.dropped.Add(1)
	}
}

// Close stops accepting events and waits until buffered ones are delivered.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}
