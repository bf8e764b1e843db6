package sensorhub

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mklimuk/sensorhub/device"
	"github.com/mklimuk/sensorhub/event"
	"github.com/mklimuk/sensorhub/input"
)

// buffered headroom for one full republish burst
const pipeDepth = 64

// Hub ties the pieces together: it owns the activation controller, starts
// the bridging task on first data-channel open and hands out the poll
// channel. One hub per process.
type Hub struct {
	cfg     Config
	log     *slog.Logger
	st      state
	ctrl    *Controller
	pipe    *event.Pipe
	drivers []*Driver

	bridgeOnce sync.Once
	bridgeErr  error
}

// New builds a hub from configuration. Physical devices are not touched
// until a sensor is activated or a data channel opened.
func New(cfg Config, log *slog.Logger) (*Hub, error) {
	if len(cfg.Drivers) == 0 {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	h := &Hub{cfg: cfg, log: log, pipe: event.NewPipe(pipeDepth)}
	for _, dc := range cfg.Drivers {
		mask, err := dc.Mask()
		if err != nil {
			return nil, err
		}
		h.drivers = append(h.drivers, &Driver{
			Name:  dc.Name,
			Types: mask,
			Open:  openerFor(dc),
		})
	}
	h.ctrl = NewController(&h.st, h.drivers, h.inject)
	return h, nil
}

// openerFor builds the lazy capability opener for one driver. Input-only
// drivers (no chip) have none.
func openerFor(dc DriverConfig) func(ctx context.Context) (device.Capability, error) {
	if dc.Chip == "" {
		return nil
	}
	return func(ctx context.Context) (device.Capability, error) {
		if dc.Bus != "" {
			port, err := device.OpenI2CPort(dc.Bus, dc.Addr)
			if err != nil {
				return nil, err
			}
			cap, err := device.ForChip(dc.Chip, port)
			if err != nil {
				_ = port.Close()
				return nil, err
			}
			return cap, nil
		}
		return device.Open(ctx, dc.Chip, dc.Path)
	}
}

// inject writes a marker into the first driver's raw stream so it travels
// the same path as hardware events.
func (h *Hub) inject(e event.Event) error {
	src, err := input.OpenByName(h.cfg.InputDir, h.drivers[0].Name, os.O_WRONLY)
	if err != nil {
		return err
	}
	defer src.Close()
	return src.WriteEvent(e)
}

// Activate requests one logical sensor type on or off.
func (h *Hub) Activate(ctx context.Context, t Type, enabled bool) error {
	return h.ctrl.Activate(ctx, t, enabled)
}

// SetInterval forwards the sampling interval to open devices, best effort.
func (h *Hub) SetInterval(ctx context.Context, interval time.Duration) error {
	return h.ctrl.SetInterval(ctx, interval)
}

// Wake unblocks the bridge and any blocked poll deterministically.
func (h *Hub) Wake(ctx context.Context) error {
	return h.ctrl.Wake(ctx)
}

// State reports the current requested and powered masks.
func (h *Hub) State() (requested, powered Mask) {
	return h.ctrl.State()
}

// OpenChannel starts the bridge task on first use and returns the logical
// poll channel. The channel is owned by one consumer at a time. Startup is
// fail-fast: if any raw source cannot be opened the bridge never runs.
func (h *Hub) OpenChannel(ctx context.Context) (*Channel, error) {
	h.bridgeOnce.Do(func() {
		sources := make([]*input.Source, 0, len(h.drivers))
		for _, drv := range h.drivers {
			src, err := input.OpenByName(h.cfg.InputDir, drv.Name, os.O_RDONLY)
			if err != nil {
				for _, s := range sources {
					_ = s.Close()
				}
				h.bridgeErr = fmt.Errorf("%w: source %s: %v", ErrDeviceUnavailable, drv.Name, err)
				return
			}
			sources = append(sources, src)
		}
		b := newBridge(input.NewMux(sources...), h.pipe, &h.st, h.log)
		go b.run()
		h.log.Debug("bridge task started", "sources", len(sources))
	})
	if h.bridgeErr != nil {
		return nil, h.bridgeErr
	}
	return newChannel(h.pipe, h.log), nil
}

// Close releases every device handle and tears the logical channel down.
func (h *Hub) Close() error {
	err := h.ctrl.Close()
	_ = h.pipe.Close()
	return err
}
