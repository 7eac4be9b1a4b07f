package stream

import (
	"fmt"
	"os"
	"strings"
)

// Readable reports whether an open mode allows reading.
func Readable(mode string) bool {
	return strings.ContainsAny(mode, "r+")
}

// Writable reports whether an open mode allows writing.
func Writable(mode string) bool {
	return strings.ContainsAny(mode, "waxc+")
}

// flags translates an fopen-style mode ("r", "rb", "w+", "a", "x", "c+", ...)
// into os.OpenFile flags. The "b" and "t" modifiers are accepted and ignored.
func flags(mode string) (int, error) {
	plus := strings.Contains(mode, "+")
	base := strings.TrimLeft(mode, " ")
	if base == "" {
		return 0, fmt.Errorf("stream: empty open mode")
	}

	rw := os.O_WRONLY
	if plus {
		rw = os.O_RDWR
	}

	switch base[0] {
	case 'r':
		if plus {
			return os.O_RDWR, nil
		}
		return os.O_RDONLY, nil
	case 'w':
		return rw | os.O_CREATE | os.O_TRUNC, nil
	case 'a':
		return rw | os.O_CREATE | os.O_APPEND, nil
	case 'x':
		return rw | os.O_CREATE | os.O_EXCL, nil
	case 'c':
		return rw | os.O_CREATE, nil
	}
	return 0, fmt.Errorf("stream: invalid open mode %q", mode)
}

// OpenFile opens path with an fopen-style mode and returns it as a Resource
// that reports its path and mode as metadata.
func OpenFile(path, mode string) (Resource, error) {
	flag, err := flags(mode)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &file{File: f, mode: mode}, nil
}

// OpenTemp creates an anonymous temporary file opened with mode. The file is
// removed from the filesystem right away; it lives until the handle closes.
func OpenTemp(mode string) (Resource, error) {
	if _, err := flags(mode); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp("", "stream-*")
	if err != nil {
		return nil, err
	}
	_ = os.Remove(f.Name())
	return &file{File: f, mode: mode}, nil
}
