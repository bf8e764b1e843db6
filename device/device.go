package device

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownChip = errors.New("unknown chip")

// Capability is the control surface every physical device offers. The
// activation logic stays chip-agnostic: it only ever powers a device up or
// down and releases it.
type Capability interface {
	SetPower(ctx context.Context, on bool) error
	Close() error
}

// IntervalSetter is implemented by devices that accept a sampling interval.
type IntervalSetter interface {
	SetInterval(ctx context.Context, interval time.Duration) error
}

// Port carries encoded control commands to one chip. Implementations exist
// for character devices (DevPort) and I2C-attached controllers (I2CPort).
type Port interface {
	Command(ctx context.Context, op uint16, arg int32) error
	Close() error
}

// Open opens the control capability for a chip known by name. The returned
// capability owns the port and closes it on Close.
func Open(ctx context.Context, chip, path string) (Capability, error) {
	port, err := OpenDevPort(path)
	if err != nil {
		return nil, err
	}
	cap, err := ForChip(chip, port)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return cap, nil
}

// ForChip binds a chip implementation to an already opened port.
func ForChip(chip string, port Port) (Capability, error) {
	switch chip {
	case "kxtf9":
		return NewKXTF9(port), nil
	case "akm8973":
		return NewAKM8973(port), nil
	case "sfh7743":
		return NewSFH7743(port), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChip, chip)
}
