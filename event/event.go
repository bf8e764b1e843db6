package event

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// RecordSize is the size of one encoded event record on the wire.
const RecordSize = 16

var ErrMalformed = errors.New("malformed event record")

// Kind distinguishes the two classes of records a source can emit.
type Kind uint16

const (
	// KindBoundary delimits a batch of axis updates belonging to the
	// same instant, or carries an out-of-band marker.
	KindBoundary Kind = 0x00
	// KindAxis carries one raw component value for one sensor axis.
	KindAxis Kind = 0x01
)

// Code identifies the axis (or marker) a record refers to.
type Code uint16

// Axis codes. The numbering is stable wire format, grouped by sensor.
const (
	CodeAccelX Code = 0x00
	CodeAccelY Code = 0x01
	CodeAccelZ Code = 0x02
	// calibration accuracy of the accelerometer, latched only
	CodeAccelStatus Code = 0x08

	CodeMagX Code = 0x10
	CodeMagY Code = 0x11
	CodeMagZ Code = 0x12

	CodeYaw   Code = 0x20
	CodePitch Code = 0x21
	CodeRoll  Code = 0x22
	// calibration accuracy of the orientation fusion, latched only
	CodeOrientStatus Code = 0x28

	CodeTemperature Code = 0x30
	CodeProximity   Code = 0x31
	CodeLight       Code = 0x32
)

// Boundary codes.
const (
	// CodeReport closes a batch of axis updates.
	CodeReport Code = 0x00
	// CodeMarker is an out-of-band synchronization marker injected into
	// the stream from outside the normal producer (see Hub.Wake).
	CodeMarker Code = 0x01
)

// MarkerShutdown is the marker value that requests stream consumers to stop.
const MarkerShutdown int32 = 0

// Event is one discrete record read from or written to an event source.
type Event struct {
	Sec   uint32
	Usec  uint32
	Kind  Kind
	Code  Code
	Value int32
}

// At returns a copy of e stamped with the given time.
func (e Event) At(t time.Time) Event {
	e.Sec = uint32(t.Unix())
	e.Usec = uint32(t.Nanosecond() / 1000)
	return e
}

// Time returns the timestamp carried by the record.
func (e Event) Time() time.Time {
	return time.Unix(int64(e.Sec), int64(e.Usec)*1000)
}

// IsShutdown reports whether the event is the shutdown marker.
func (e Event) IsShutdown() bool {
	return e.Kind == KindBoundary && e.Code == CodeMarker && e.Value == MarkerShutdown
}

// Encode writes the 16-byte record representation into buf.
func (e Event) Encode(buf []byte) error {
	if len(buf) < RecordSize {
		return fmt.Errorf("%w: buffer of %d bytes", ErrMalformed, len(buf))
	}
	binary.LittleEndian.PutUint32(buf[0:4], e.Sec)
	binary.LittleEndian.PutUint32(buf[4:8], e.Usec)
	binary.LittleEndian.PutUint16(buf[8:10], uint16(e.Kind))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(e.Code))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(e.Value))
	return nil
}

// Decode parses one record. A record of any other size than RecordSize is
// malformed and rejected as a whole.
func Decode(buf []byte) (Event, error) {
	if len(buf) != RecordSize {
		return Event{}, fmt.Errorf("%w: %d bytes", ErrMalformed, len(buf))
	}
	return Event{
		Sec:   binary.LittleEndian.Uint32(buf[0:4]),
		Usec:  binary.LittleEndian.Uint32(buf[4:8]),
		Kind:  Kind(binary.LittleEndian.Uint16(buf[8:10])),
		Code:  Code(binary.LittleEndian.Uint16(buf[10:12])),
		Value: int32(binary.LittleEndian.Uint32(buf[12:16])),
	}, nil
}

// Reader is a blocking source of discrete events.
type Reader interface {
	ReadEvent(ctx context.Context) (Event, error)
}

// Writer publishes discrete events.
type Writer interface {
	WriteEvent(e Event) error
}
