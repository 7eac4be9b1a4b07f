package stream

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// Resource is the handle a Stream owns. Only Close is mandatory; reading,
// writing and seeking are discovered through io.Reader, io.Writer and
// io.Seeker, sizing through Size() int64 or Stat(), and metadata through
// Describer.
//
// *os.File satisfies all of them, as does the in-memory resource returned
// by NewMemory.
type Resource interface {
	io.Closer
}

// Describer is implemented by resources that report their own metadata.
type Describer interface {
	Metadata() Metadata
}

type sizer interface {
	Size() int64
}

type stater interface {
	Stat() (fs.FileInfo, error)
}

// Metadata keys.
const (
	MetaURI         = "uri"
	MetaMode        = "mode"
	MetaSeekable    = "seekable"
	MetaWrapperType = "wrapper_type"
	MetaStreamType  = "stream_type"
)

// Metadata describes a resource: its uri, mode and so on.
type Metadata map[string]any

// describe builds metadata for res, preferring the resource's own report.
func describe(res Resource) Metadata {
	if d, ok := res.(Describer); ok {
		return d.Metadata()
	}

	_, readable := res.(io.Reader)
	_, writable := res.(io.Writer)
	_, seekable := res.(io.Seeker)

	mode := ""
	switch {
	case readable && writable:
		mode = "r+"
	case readable:
		mode = "r"
	case writable:
		mode = "w"
	}

	meta := Metadata{
		MetaMode:        mode,
		MetaSeekable:    seekable,
		MetaWrapperType: "go",
		MetaStreamType:  "generic",
	}
	if f, ok := res.(*os.File); ok {
		meta[MetaURI] = f.Name()
		meta[MetaWrapperType] = "plainfile"
		meta[MetaStreamType] = "STDIO"
	}
	return meta
}

// ── File resource ─────────────────────────────────────────────────────────────

// file pairs an *os.File with the mode it was opened with, which the OS
// handle itself does not expose.
type file struct {
	*os.File
	mode string
}

func (f *file) Metadata() Metadata {
	return Metadata{
		MetaURI:         f.Name(),
		MetaMode:        f.mode,
		MetaSeekable:    true,
		MetaWrapperType: "plainfile",
		MetaStreamType:  "STDIO",
	}
}

// ── Memory resource ───────────────────────────────────────────────────────────

var errNegativePosition = errors.New("negative position")

// memory is a growable, seekable in-memory byte buffer.
type memory struct {
	buf    []byte
	pos    int64
	closed bool
}

// NewMemory returns an empty read/write in-memory resource.
func NewMemory() Resource { return &memory{} }

func (m *memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		if end > int64(cap(m.buf)) {
			grown := make([]byte, end, 2*end)
			copy(grown, m.buf)
			m.buf = grown
		} else {
			m.buf = m.buf[:end]
		}
	}
	copy(m.buf[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	m.pos = abs
	return abs, nil
}

func (m *memory) Size() int64 { return int64(len(m.buf)) }

func (m *memory) Close() error {
	if m.closed {
		return os.ErrClosed
	}
	m.closed = true
	m.buf = nil
	return nil
}

func (m *memory) Metadata() Metadata {
	return Metadata{
		MetaMode:        "rb+",
		MetaSeekable:    true,
		MetaWrapperType: "memory",
		MetaStreamType:  "MEMORY",
	}
}
