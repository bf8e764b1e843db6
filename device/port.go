package device

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
)

const cmdFrameSize = 8

// DevPort writes command frames to a chip's control device file. A frame is
// 8 bytes: op (LE uint16), reserved, argument (LE int32).
type DevPort struct {
	f *os.File
}

func OpenDevPort(path string) (*DevPort, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	return &DevPort{f: f}, nil
}

func (p *DevPort) Command(ctx context.Context, op uint16, arg int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var frame [cmdFrameSize]byte
	binary.LittleEndian.PutUint16(frame[0:2], op)
	binary.LittleEndian.PutUint32(frame[4:8], uint32(arg))
	n, err := p.f.Write(frame[:])
	if err != nil {
		return fmt.Errorf("command %#04x on %s failed: %w", op, p.f.Name(), err)
	}
	if n != cmdFrameSize {
		return fmt.Errorf("short command write on %s: %d", p.f.Name(), n)
	}
	return nil
}

func (p *DevPort) Close() error {
	return p.f.Close()
}
