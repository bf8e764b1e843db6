package input

import (
	"fmt"
	"io"
	"os"

	"github.com/mklimuk/sensorhub/event"
)

// SourceEvent pairs one decoded event with the index of the source that
// produced it.
type SourceEvent struct {
	Index int
	Event event.Event
}

// Source is a raw event source backed by a character device (or any file
// descriptor delivering whole records per read).
type Source struct {
	f *os.File
}

func NewSource(f *os.File) *Source {
	return &Source{f: f}
}

// ReadEvent reads exactly one discrete record. A read of the wrong size is
// reported as event.ErrMalformed so the caller can drop it and continue.
func (s *Source) ReadEvent() (event.Event, error) {
	var buf [event.RecordSize]byte
	n, err := s.f.Read(buf[:])
	if err != nil {
		if err == io.EOF {
			return event.Event{}, io.EOF
		}
		return event.Event{}, fmt.Errorf("read from %s failed: %w", s.f.Name(), err)
	}
	if n != event.RecordSize {
		return event.Event{}, fmt.Errorf("%w: short read of %d bytes from %s", event.ErrMalformed, n, s.f.Name())
	}
	return event.Decode(buf[:n])
}

// WriteEvent writes one record into the source, for sources opened writable.
func (s *Source) WriteEvent(e event.Event) error {
	var buf [event.RecordSize]byte
	if err := e.Encode(buf[:]); err != nil {
		return err
	}
	if _, err := s.f.Write(buf[:]); err != nil {
		return fmt.Errorf("write to %s failed: %w", s.f.Name(), err)
	}
	return nil
}

// Fd exposes the underlying descriptor for multi-source waits.
func (s *Source) Fd() int {
	return int(s.f.Fd())
}

func (s *Source) Name() string {
	return s.f.Name()
}

func (s *Source) Close() error {
	return s.f.Close()
}
