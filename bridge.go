package sensorhub

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mklimuk/sensorhub/event"
	"github.com/mklimuk/sensorhub/input"
)

// rawMux abstracts the blocking multi-source wait so the bridge can run
// against real character devices or an in-memory fake.
type rawMux interface {
	Wait() ([]input.SourceEvent, error)
	Close() error
}

// logicalPipe is the write side of the logical channel.
type logicalPipe interface {
	WriteEvent(e event.Event) error
	Close() error
}

// rawDraft accumulates the latest raw component values for one logical type
// between boundaries.
type rawDraft struct {
	values    [3]int32
	status    int32
	hasStatus bool
}

// bridge is the background task that decouples N raw physical sources from
// the single logical consumer stream. It runs once per process and is only
// ever signalled to stop, never restarted.
type bridge struct {
	mux rawMux
	out logicalPipe
	st  *state
	log *slog.Logger

	drafts [NumTypes]rawDraft
	dirty  Mask
}

func newBridge(mux rawMux, out logicalPipe, st *state, log *slog.Logger) *bridge {
	if log == nil {
		log = slog.Default()
	}
	return &bridge{mux: mux, out: out, st: st, log: log}
}

// run blocks on the multiplexer forever, accumulating axis updates and
// republishing coalesced drafts at every boundary. It exits on the shutdown
// marker or when the raw stream ends, closing the logical channel either way.
func (b *bridge) run() {
	defer func() {
		_ = b.out.Close()
		_ = b.mux.Close()
	}()
	for {
		evs, err := b.mux.Wait()
		if err != nil {
			if errors.Is(err, io.EOF) {
				b.log.Warn("raw source exhausted, stopping bridge", "error", err)
				return
			}
			// transient wait failure, slow down and retry
			b.log.Warn("raw wait failed", "error", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}
		for _, se := range evs {
			if b.handle(se.Event) {
				return
			}
		}
	}
}

// handle processes one raw event in source order. It reports true when the
// bridge must stop.
func (b *bridge) handle(ev event.Event) (stop bool) {
	switch ev.Kind {
	case event.KindAxis:
		if t, axis, ok := axisFor(ev.Code); ok {
			b.drafts[t].values[axis] = ev.Value
			b.dirty = b.dirty.With(t)
			return false
		}
		if t, ok := statusFor(ev.Code); ok {
			// latched, not delivery-worthy on its own
			b.drafts[t].status = ev.Value
			b.drafts[t].hasStatus = true
		}
	case event.KindBoundary:
		if ev.Code == event.CodeMarker {
			if ev.Value == event.MarkerShutdown {
				if err := b.out.WriteEvent(ev); err != nil {
					b.log.Error("could not forward stop marker", "error", err)
				}
				return true
			}
			return false
		}
		b.flush(ev)
	}
	return false
}

// flush republishes every dirty draft, highest priority first, onto the
// logical channel. Acceleration is suppressed unless it is among the powered
// logical types at this instant; everything else flows regardless of
// activation, mirroring what the chips actually emit.
func (b *bridge) flush(bound event.Event) {
	if b.dirty.Empty() {
		return
	}
	_, powered := b.st.snapshot()
	for _, t := range b.dirty.Descending() {
		if t == Acceleration && !powered.Has(Acceleration) {
			continue
		}
		b.republish(t, bound)
	}
	b.dirty = 0
}

func (b *bridge) republish(t Type, bound event.Event) {
	d := b.drafts[t]
	for i, code := range axisCodes(t) {
		b.write(event.Event{Sec: bound.Sec, Usec: bound.Usec, Kind: event.KindAxis, Code: code, Value: d.values[i]})
	}
	if code, ok := statusCodeFor(t); ok && d.hasStatus {
		b.write(event.Event{Sec: bound.Sec, Usec: bound.Usec, Kind: event.KindAxis, Code: code, Value: d.status})
	}
	b.write(event.Event{Sec: bound.Sec, Usec: bound.Usec, Kind: event.KindBoundary, Code: event.CodeReport})
}

func (b *bridge) write(e event.Event) {
	if err := b.out.WriteEvent(e); err != nil {
		b.log.Debug("logical channel write failed", "error", err)
	}
}
