// Package hal adapts the hub's Go API to the integer-code convention of the
// host plugin loader: 0 for success, negated OS error numbers for failures
// and a distinguished sentinel for the stop signal.
package hal

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/mklimuk/sensorhub"
)

// StopSentinel is returned by Poll when the consumer must stop polling.
const StopSentinel = 0x7FFFFFFF

// Code maps an error to the loader's integer convention.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, sensorhub.ErrStopped):
		return StopSentinel
	case errors.Is(err, sensorhub.ErrInvalidHandle):
		return -int(unix.EINVAL)
	case errors.Is(err, sensorhub.ErrDeviceUnavailable):
		return -int(unix.ENODEV)
	case errors.Is(err, sensorhub.ErrCommandRejected):
		return -int(unix.EIO)
	case errors.Is(err, sensorhub.ErrNoPendingData):
		return -int(unix.EAGAIN)
	case errors.Is(err, sensorhub.ErrSourceExhausted):
		return -int(unix.EPIPE)
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(unix.EIO)
}

// Module is the control surface handed to the host loader.
type Module struct {
	hub *sensorhub.Hub
}

func NewModule(hub *sensorhub.Hub) *Module {
	return &Module{hub: hub}
}

// List exposes the static sensor catalog.
func (m *Module) List() []sensorhub.Descriptor {
	return sensorhub.Catalog()
}

// Activate toggles the sensor identified by its numeric handle.
func (m *Module) Activate(handle int, enabled bool) int {
	return Code(m.hub.Activate(context.Background(), sensorhub.Type(handle), enabled))
}

// SetDelay applies a sampling interval in milliseconds.
func (m *Module) SetDelay(ms int) int {
	return Code(m.hub.SetInterval(context.Background(), time.Duration(ms)*time.Millisecond))
}

// Wake unblocks any blocked wait or read.
func (m *Module) Wake() int {
	return Code(m.hub.Wake(context.Background()))
}

// OpenDataChannel opens the logical poll channel.
func (m *Module) OpenDataChannel() (*sensorhub.Channel, int) {
	ch, err := m.hub.OpenChannel(context.Background())
	return ch, Code(err)
}

// Poll serves one reading, the stop sentinel, or an error code.
func (m *Module) Poll(ch *sensorhub.Channel) (sensorhub.Reading, int) {
	r, err := ch.Poll(context.Background())
	return r, Code(err)
}

// Close releases the hub.
func (m *Module) Close() int {
	return Code(m.hub.Close())
}
