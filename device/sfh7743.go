package device

import (
	"context"
	"fmt"
)

const sfh7743OpEnable uint16 = 0x01

// SFH7743 represents the Osram SFH7743 proximity detector. It has no
// configurable sampling interval.
type SFH7743 struct {
	port Port
}

func NewSFH7743(port Port) *SFH7743 {
	return &SFH7743{port: port}
}

func (d *SFH7743) SetPower(ctx context.Context, on bool) error {
	var flag int32
	if on {
		flag = 1
	}
	if err := d.port.Command(ctx, sfh7743OpEnable, flag); err != nil {
		return fmt.Errorf("sfh7743: set enable: %w", err)
	}
	return nil
}

func (d *SFH7743) Close() error {
	return d.port.Close()
}
