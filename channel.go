package sensorhub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mklimuk/sensorhub/event"
)

// throttle applied when the pending set is unexpectedly empty, so a caller
// retrying in a loop cannot spin hot
const pickBackoff = 100 * time.Millisecond

// Channel is the consumer-facing side of the logical event stream. One
// consumer at a time calls Poll repeatedly; each call returns at most one
// complete reading, highest-priority type first within a boundary batch.
type Channel struct {
	src event.Reader
	log *slog.Logger

	drafts  [NumTypes]draft
	pending Mask
	// terminal via stop marker or end-of-stream
	stopped bool
	// terminal via explicit Close
	closed bool

	sleep func(time.Duration)
}

func newChannel(src event.Reader, log *slog.Logger) *Channel {
	if log == nil {
		log = slog.Default()
	}
	c := &Channel{src: src, log: log, sleep: time.Sleep}
	// all sensors start at high accuracy: a status that never changes is
	// never re-sent on the wire
	for i := range c.drafts {
		c.drafts[i].status = StatusAccuracyHigh
	}
	return c
}

// Poll returns the next complete reading. When the stop marker is observed
// it returns ErrStopped exactly once; every later call reports
// ErrSourceExhausted. A closed channel reports ErrInvalidHandle.
func (c *Channel) Poll(ctx context.Context) (Reading, error) {
	if c.closed {
		return Reading{}, fmt.Errorf("%w: channel closed", ErrInvalidHandle)
	}
	if c.stopped {
		return Reading{}, ErrSourceExhausted
	}
	// readings already finalized by an earlier boundary go out first
	if !c.pending.Empty() {
		return c.pick()
	}

	var dirty Mask
	for {
		ev, err := c.src.ReadEvent(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.stopped = true
				return Reading{}, fmt.Errorf("%w: logical stream ended", ErrSourceExhausted)
			}
			return Reading{}, err
		}
		switch ev.Kind {
		case event.KindAxis:
			c.apply(ev, &dirty)
		case event.KindBoundary:
			if ev.Code == event.CodeMarker && ev.Value == event.MarkerShutdown {
				c.stopped = true
				return Reading{}, ErrStopped
			}
			if dirty.Empty() {
				continue
			}
			stamp := ev.Time()
			for _, t := range dirty.Descending() {
				c.drafts[t].time = stamp
			}
			c.pending = dirty
			return c.pick()
		}
	}
}

// apply folds one logical event into the drafts. Axis values convert to
// physical units and mark the type dirty; status values are latched without
// making the draft delivery-worthy.
func (c *Channel) apply(ev event.Event, dirty *Mask) {
	if t, axis, ok := axisFor(ev.Code); ok {
		c.drafts[t].values[axis] = convertAxis(t, axis, ev.Value)
		*dirty = dirty.With(t)
		return
	}
	if t, ok := statusFor(ev.Code); ok {
		if t != Orientation {
			// accelerometer calibration status is never surfaced
			return
		}
		status := Status(ev.Value & statusStateMask)
		if c.drafts[t].status != status {
			c.log.Debug("orientation status changed", "status", int(status))
		}
		c.drafts[t].status = status
	}
}

// pick drains the highest-priority pending type and hands out its snapshot.
func (c *Channel) pick() (Reading, error) {
	t, ok := c.pending.Highest()
	if !ok {
		// should not occur; throttle before the caller may retry
		c.log.Error("pending set empty on pick")
		c.sleep(pickBackoff)
		return Reading{}, ErrNoPendingData
	}
	c.pending = c.pending.Without(t)
	return c.drafts[t].snapshot(t), nil
}

// Close makes the channel terminal from any state.
func (c *Channel) Close() error {
	c.closed = true
	return nil
}
