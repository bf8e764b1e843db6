package device

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var _ Port = &I2CPort{}

// I2CPort drives a chip whose control interface hangs off an I2C bus instead
// of a dedicated character device. Commands map to single-register writes.
type I2CPort struct {
	bus  i2c.BusCloser
	addr uint16
}

func OpenI2CPort(dev string, addr uint16) (*I2CPort, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus %s: %w", dev, err)
	}
	return &I2CPort{bus: bus, addr: addr}, nil
}

func (p *I2CPort) Command(ctx context.Context, op uint16, arg int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.bus.Tx(p.addr, []byte{byte(op), byte(arg)}, nil)
	if err != nil {
		return fmt.Errorf("command %#04x to i2c %#02x failed: %w", op, p.addr, err)
	}
	return nil
}

func (p *I2CPort) Close() error {
	return p.bus.Close()
}
