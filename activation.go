package sensorhub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/mklimuk/sensorhub/device"
	"github.com/mklimuk/sensorhub/event"
)

// state is the activation state shared between the controller and the
// bridge. Invariant: powered == requested plus the dependency closure
// (orientation implies the accelerometer's logical bit). One mutex guards
// every read-then-decide sequence on either side so no torn transition is
// ever observable.
type state struct {
	mu        sync.Mutex
	requested Mask
	powered   Mask
}

func (s *state) snapshot() (requested, powered Mask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested, s.powered
}

// closure expands a requested set with cross-sensor activation dependencies:
// orientation is fused from accelerometer data, so the accelerometer chip
// must be powered whenever orientation is requested.
func closure(requested Mask) Mask {
	powered := requested
	if powered.Has(Orientation) {
		powered = powered.With(Acceleration)
	}
	return powered
}

// Driver binds one physical driver's logical sensor set to its lazily
// opened control capability. Drivers with a nil opener are input-only.
type Driver struct {
	Name  string
	Types Mask
	Open  func(ctx context.Context) (device.Capability, error)

	cap device.Capability
}

// Controller owns the activation state machine: which logical types are
// requested, which chips are powered, and the power commands that move the
// hardware between those states.
type Controller struct {
	st      *state
	drivers []*Driver
	// injected by the hub: emits a marker into the raw stream
	inject func(e event.Event) error
}

func NewController(st *state, drivers []*Driver, inject func(event.Event) error) *Controller {
	return &Controller{st: st, drivers: drivers, inject: inject}
}

// Activate sets or clears one logical sensor type. The whole transition is
// all-or-nothing: the first device that cannot be opened or refuses its
// power command aborts the operation with both masks unchanged. Devices
// whose powered state does not change receive no command.
func (c *Controller) Activate(ctx context.Context, t Type, enabled bool) error {
	if !t.Valid() {
		return fmt.Errorf("%w: sensor type %d", ErrInvalidHandle, int(t))
	}
	c.st.mu.Lock()
	defer c.st.mu.Unlock()

	newRequested := c.st.requested.Without(t)
	if enabled {
		newRequested = newRequested.With(t)
	}
	newPowered := closure(newRequested)
	changed := c.st.powered ^ newPowered

	if changed != 0 {
		for _, drv := range c.drivers {
			if changed&drv.Types == 0 || drv.Open == nil {
				continue
			}
			on := newPowered&drv.Types != 0
			if drv.cap == nil {
				cap, err := drv.Open(ctx)
				if err != nil {
					return fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, drv.Name, err)
				}
				drv.cap = cap
			}
			if err := drv.cap.SetPower(ctx, on); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrCommandRejected, drv.Name, err)
			}
			if !on {
				// do not hold the handle while the chip is off
				_ = drv.cap.Close()
				drv.cap = nil
			}
		}
	}

	c.st.requested = newRequested
	c.st.powered = newPowered
	return nil
}

// SetInterval forwards the sampling interval to every currently open device
// that supports one. Rejections are collected per device; the remaining
// devices are still commanded.
func (c *Controller) SetInterval(ctx context.Context, interval time.Duration) error {
	c.st.mu.Lock()
	defer c.st.mu.Unlock()
	var errs error
	for _, drv := range c.drivers {
		if drv.cap == nil {
			continue
		}
		setter, ok := drv.cap.(device.IntervalSetter)
		if !ok {
			continue
		}
		if err := setter.SetInterval(ctx, interval); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", drv.Name, err))
		}
	}
	return errs
}

// Wake injects a synchronization marker into the raw stream so a blocked
// bridge or poll loop observes an exit condition. Used during shutdown.
func (c *Controller) Wake(ctx context.Context) error {
	marker := event.Event{
		Kind:  event.KindBoundary,
		Code:  event.CodeMarker,
		Value: event.MarkerShutdown,
	}.At(time.Now())
	if err := c.inject(marker); err != nil {
		return fmt.Errorf("could not inject wake marker: %w", err)
	}
	return nil
}

// State reports the current requested and powered masks.
func (c *Controller) State() (requested, powered Mask) {
	return c.st.snapshot()
}

// Close releases every open device handle.
func (c *Controller) Close() error {
	c.st.mu.Lock()
	defer c.st.mu.Unlock()
	var errs error
	for _, drv := range c.drivers {
		if drv.cap == nil {
			continue
		}
		if err := drv.cap.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", drv.Name, err))
		}
		drv.cap = nil
	}
	return errs
}
