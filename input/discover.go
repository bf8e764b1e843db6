//go:build linux

package input

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultDir is where raw event sources are published by the kernel.
const DefaultDir = "/dev/input"

var ErrNotFound = errors.New("no source with requested name")

// source name query, EVIOCGNAME(len): _IOC(read, 'E', 0x06, len)
const (
	iocRead      = 2
	iocEventType = 'E'
	iocNameNR    = 0x06
	nameBufSize  = 80
)

func eviocgname(size int) uint {
	return uint(iocRead<<30 | size<<16 | iocEventType<<8 | iocNameNR)
}

// SourceName asks a source which name it advertises.
func SourceName(fd int) (string, error) {
	var buf [nameBufSize]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd),
		uintptr(eviocgname(len(buf)-1)), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "", errno
	}
	if i := bytes.IndexByte(buf[:], 0); i >= 0 {
		return string(buf[:i]), nil
	}
	return string(buf[:]), nil
}

// OpenByName scans dir for a source advertising the given name and opens it
// with the requested flag (os.O_RDONLY or os.O_WRONLY). Entries that cannot
// be opened or queried are skipped.
func OpenByName(dir, name string, flag int) (*Source, error) {
	if dir == "" {
		dir = DefaultDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not scan %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		f, err := os.OpenFile(path, flag, 0)
		if err != nil {
			continue
		}
		advertised, err := SourceName(int(f.Fd()))
		if err != nil || advertised != name {
			_ = f.Close()
			continue
		}
		return NewSource(f), nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, name, dir)
}
