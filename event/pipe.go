package event

import (
	"context"
	"io"
	"sync"
)

// Pipe is an in-process logical event channel: one producer republishes
// events onto it, one consumer drains them with blocking reads. Closing the
// pipe is terminal; buffered events are still drained before readers see
// end-of-stream.
type Pipe struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
}

func NewPipe(size int) *Pipe {
	return &Pipe{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
	}
}

// WriteEvent publishes one event. It returns io.ErrClosedPipe once the pipe
// has been closed.
func (p *Pipe) WriteEvent(e Event) error {
	select {
	case <-p.done:
		return io.ErrClosedPipe
	default:
	}
	select {
	case p.ch <- e:
		return nil
	case <-p.done:
		return io.ErrClosedPipe
	}
}

// ReadEvent blocks until one event is available, the pipe is closed and
// drained (io.EOF), or ctx is cancelled.
func (p *Pipe) ReadEvent(ctx context.Context) (Event, error) {
	// drain buffered events before reporting end-of-stream
	select {
	case e := <-p.ch:
		return e, nil
	default:
	}
	select {
	case e := <-p.ch:
		return e, nil
	case <-p.done:
		select {
		case e := <-p.ch:
			return e, nil
		default:
			return Event{}, io.EOF
		}
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Close marks the pipe terminal. Safe to call more than once.
func (p *Pipe) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}
