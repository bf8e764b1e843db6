package input

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/mklimuk/sensorhub/event"
)

// Mux blocks on several sources at once and reads one discrete event from
// each source that became ready. Per-source ordering is preserved; no
// ordering is promised across sources within one wakeup.
type Mux struct {
	sources []*Source
	fds     []unix.PollFd
}

func NewMux(sources ...*Source) *Mux {
	fds := make([]unix.PollFd, len(sources))
	for i, s := range sources {
		fds[i] = unix.PollFd{Fd: int32(s.Fd()), Events: unix.POLLIN}
	}
	return &Mux{sources: sources, fds: fds}
}

// Wait blocks with no timeout until at least one source is ready, then reads
// one event from every ready source. Malformed records are dropped. A source
// at end-of-stream surfaces io.EOF, which is terminal for the whole mux.
func (m *Mux) Wait() ([]SourceEvent, error) {
	for {
		n, err := unix.Poll(m.fds, -1)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return nil, fmt.Errorf("wait on %d sources failed: %w", len(m.fds), err)
		}
		if n <= 0 {
			continue
		}
		var out []SourceEvent
		for i := range m.fds {
			// hangup and error states must reach the read so end-of-stream
			// is observed instead of spinning on the poll
			if m.fds[i].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
				continue
			}
			ev, err := m.sources[i].ReadEvent()
			if err != nil {
				if errors.Is(err, event.ErrMalformed) {
					// transient noise, treat as signal absence
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil, fmt.Errorf("source %s exhausted: %w", m.sources[i].Name(), io.EOF)
				}
				return nil, fmt.Errorf("source %s: %w", m.sources[i].Name(), err)
			}
			out = append(out, SourceEvent{Index: i, Event: ev})
		}
		if len(out) == 0 {
			continue
		}
		return out, nil
	}
}

func (m *Mux) Close() error {
	var last error
	for _, s := range m.sources {
		if err := s.Close(); err != nil {
			last = err
		}
	}
	return last
}
