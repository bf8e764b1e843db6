package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_EncodeDecode(t *testing.T) {
	in := Event{Sec: 1700000000, Usec: 250000, Kind: KindAxis, Code: CodeMagY, Value: -42}
	var buf [RecordSize]byte
	require.NoError(t, in.Encode(buf[:]))

	out, err := Decode(buf[:])
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, time.Unix(1700000000, 250000000), out.Time())
}

func TestDecode_WrongSize(t *testing.T) {
	_, err := Decode(make([]byte, RecordSize-1))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = Decode(make([]byte, RecordSize+4))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestEvent_IsShutdown(t *testing.T) {
	marker := Event{Kind: KindBoundary, Code: CodeMarker, Value: MarkerShutdown}
	assert.True(t, marker.IsShutdown())
	assert.False(t, Event{Kind: KindBoundary, Code: CodeReport}.IsShutdown())
	assert.False(t, Event{Kind: KindBoundary, Code: CodeMarker, Value: 1}.IsShutdown())
	assert.False(t, Event{Kind: KindAxis, Code: CodeMarker, Value: MarkerShutdown}.IsShutdown())
}

func TestEvent_At(t *testing.T) {
	stamp := time.Unix(99, 123456000)
	e := Event{Kind: KindBoundary, Code: CodeReport}.At(stamp)
	assert.Equal(t, uint32(99), e.Sec)
	assert.Equal(t, uint32(123456), e.Usec)
}
