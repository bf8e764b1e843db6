package device

import (
	"context"
	"fmt"
	"time"
)

// Control ops understood by the AK8973 compass driver. The chip carries
// three measurement engines toggled by separate flags.
const (
	akmOpOrientFlag uint16 = 0x10
	akmOpTempFlag   uint16 = 0x11
	akmOpMagFlag    uint16 = 0x12
	akmOpDelay      uint16 = 0x13
)

// AKM8973 represents the Asahi Kasei AK8973 compass chip, which backs the
// magnetic field, orientation and temperature measurements.
type AKM8973 struct {
	port Port
}

func NewAKM8973(port Port) *AKM8973 {
	return &AKM8973{port: port}
}

// SetPower toggles all three measurement engines together. The first flag
// that fails aborts the sequence.
func (d *AKM8973) SetPower(ctx context.Context, on bool) error {
	var flag int32
	if on {
		flag = 1
	}
	for _, op := range []uint16{akmOpMagFlag, akmOpOrientFlag, akmOpTempFlag} {
		if err := d.port.Command(ctx, op, flag); err != nil {
			return fmt.Errorf("akm8973: set flag %#04x: %w", op, err)
		}
	}
	return nil
}

func (d *AKM8973) SetInterval(ctx context.Context, interval time.Duration) error {
	if err := d.port.Command(ctx, akmOpDelay, int32(interval.Milliseconds())); err != nil {
		return fmt.Errorf("akm8973: set delay: %w", err)
	}
	return nil
}

func (d *AKM8973) Close() error {
	return d.port.Close()
}
