package device

import (
	"context"
	"fmt"
	"time"
)

// Control ops understood by the KXTF9 accelerometer driver.
const (
	kxtf9OpEnable uint16 = 0x01
	kxtf9OpDelay  uint16 = 0x02
)

// KXTF9 represents the Kionix KXTF9 3-axis accelerometer control interface.
type KXTF9 struct {
	port Port
}

func NewKXTF9(port Port) *KXTF9 {
	return &KXTF9{port: port}
}

func (d *KXTF9) SetPower(ctx context.Context, on bool) error {
	var flag int32
	if on {
		flag = 1
	}
	if err := d.port.Command(ctx, kxtf9OpEnable, flag); err != nil {
		return fmt.Errorf("kxtf9: set enable: %w", err)
	}
	return nil
}

func (d *KXTF9) SetInterval(ctx context.Context, interval time.Duration) error {
	if err := d.port.Command(ctx, kxtf9OpDelay, int32(interval.Milliseconds())); err != nil {
		return fmt.Errorf("kxtf9: set delay: %w", err)
	}
	return nil
}

func (d *KXTF9) Close() error {
	return d.port.Close()
}
