package input

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/sensorhub/event"
)

func pipeSources(t *testing.T) (*Source, *Source) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	rs, ws := NewSource(r), NewSource(w)
	t.Cleanup(func() {
		rs.Close() //nolint:errcheck
		ws.Close() //nolint:errcheck
	})
	return rs, ws
}

func TestSource_RoundTrip(t *testing.T) {
	rs, ws := pipeSources(t)

	in := event.Event{Sec: 12, Usec: 500, Kind: event.KindAxis, Code: event.CodeAccelZ, Value: 981}
	require.NoError(t, ws.WriteEvent(in))

	out, err := rs.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSource_ShortReadIsMalformed(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	_, err = w.Write(make([]byte, event.RecordSize-3))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = NewSource(r).ReadEvent()
	assert.ErrorIs(t, err, event.ErrMalformed)
}

func TestSource_EOFPassthrough(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, w.Close())

	_, err = NewSource(r).ReadEvent()
	assert.ErrorIs(t, err, io.EOF)
}
