package stream

import (
	"errors"
	"io"
)

// ── Stream ────────────────────────────────────────────────────────────────────

// Stream is a readable, writable and seekable view over a Resource.
//
// Size and metadata are loaded lazily and cached; the size cache is dropped
// after every successful Write. Once the resource is detached or closed,
// Read, Write (see below), Seek, Rewind, Tell and Contents fail with *Error,
// while Size, Metadata, EOF and String degrade to empty values.
//
// A Stream is shared by every message that references it as a body and is
// not safe for concurrent use.
type Stream struct {
	resource Resource
	size     *int64
	metadata Metadata
	eof      bool
}

// New wraps res. A nil res yields a stream without a resource.
func New(res Resource) *Stream {
	return &Stream{resource: res}
}

// String returns the remaining contents, or "" when the stream has no
// resource or reading fails. It never reports an error.
func (s *Stream) String() string {
	if s.resource == nil {
		return ""
	}
	contents, err := s.Contents()
	if err != nil {
		return ""
	}
	return contents
}

// Close releases the resource. Closing a stream without a resource is a no-op.
func (s *Stream) Close() error {
	res := s.Detach()
	if res == nil {
		return nil
	}
	return res.Close()
}

// Detach returns the resource and leaves the stream without one.
func (s *Stream) Detach() Resource {
	res := s.resource
	s.resource = nil
	s.size = nil
	s.metadata = nil
	s.eof = false
	return res
}

// Size returns the size in bytes. ok is false when there is no resource or
// the resource cannot report it.
func (s *Stream) Size() (size int64, ok bool) {
	if s.size == nil && s.resource != nil {
		switch r := s.resource.(type) {
		case sizer:
			n := r.Size()
			s.size = &n
		case stater:
			if info, err := r.Stat(); err == nil {
				n := info.Size()
				s.size = &n
			}
		}
	}
	if s.size == nil {
		return 0, false
	}
	return *s.size, true
}

// Tell returns the current position.
func (s *Stream) Tell() (int64, error) {
	seeker, err := s.seeker("tell")
	if err != nil {
		return 0, err
	}
	pos, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, s.fail("tell", err)
	}
	return pos, nil
}

// EOF reports whether the last read hit the end of the stream. A stream
// without a resource is always at EOF.
func (s *Stream) EOF() bool {
	if s.resource == nil {
		return true
	}
	return s.eof
}

// IsSeekable reports the "seekable" metadata flag.
func (s *Stream) IsSeekable() bool {
	seekable, _ := s.MetadataValue(MetaSeekable).(bool)
	return seekable
}

// IsReadable reports whether the open mode contains a read marker.
func (s *Stream) IsReadable() bool {
	mode, _ := s.MetadataValue(MetaMode).(string)
	return Readable(mode)
}

// IsWritable reports whether the open mode contains a write marker.
func (s *Stream) IsWritable() bool {
	mode, _ := s.MetadataValue(MetaMode).(string)
	return Writable(mode)
}

// Seek moves the position and returns the new offset. whence is
// io.SeekStart, io.SeekCurrent or io.SeekEnd.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	seeker, err := s.seeker("seek")
	if err != nil {
		return 0, err
	}
	pos, err := seeker.Seek(offset, whence)
	if err != nil {
		return 0, s.fail("seek", err)
	}
	s.eof = false
	return pos, nil
}

// Rewind seeks to the beginning.
func (s *Stream) Rewind() error {
	seeker, err := s.seeker("rewind")
	if err != nil {
		return err
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return s.fail("rewind", err)
	}
	s.eof = false
	return nil
}

// Write writes p and returns the number of bytes written.
//
// A stream without a resource silently writes nothing and returns 0. Writing
// a non-empty p that results in zero bytes is reported as a failure.
func (s *Stream) Write(p []byte) (int, error) {
	if s.resource == nil {
		return 0, nil
	}
	w, ok := s.resource.(io.Writer)
	if !ok {
		return 0, s.fail("write", errors.New("resource is not writable"))
	}
	n, err := w.Write(p)
	if err != nil {
		return n, s.fail("write", err)
	}
	if len(p) > 0 && n == 0 {
		return 0, s.fail("write", io.ErrShortWrite)
	}
	s.size = nil
	return n, nil
}

// WriteString is Write for strings.
func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Read reads up to length bytes. Reaching the end yields a short (possibly
// empty) result and sets EOF; it is not an error.
func (s *Stream) Read(length int) (string, error) {
	r, err := s.reader("read")
	if err != nil {
		return "", err
	}
	if length <= 0 {
		return "", nil
	}
	// The buffer grows with what is read, never with length.
	b, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return "", s.fail("read", err)
	}
	if len(b) < length {
		s.eof = true
	}
	return string(b), nil
}

// Contents reads everything from the current position to the end.
// A stream without a resource yields "".
func (s *Stream) Contents() (string, error) {
	if s.resource == nil {
		return "", nil
	}
	r, err := s.reader("get contents")
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", s.fail("get contents", err)
	}
	s.eof = true
	return string(b), nil
}

// WriteTo copies the remaining contents to w. It implements io.WriterTo.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	r, err := s.reader("read")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, r)
	if err != nil {
		return n, s.fail("read", err)
	}
	s.eof = true
	return n, nil
}

// Metadata returns the resource metadata, loading it on first use.
// It returns nil when there is no resource.
func (s *Stream) Metadata() Metadata {
	if s.resource == nil {
		return nil
	}
	if s.metadata == nil {
		s.metadata = describe(s.resource)
	}
	return s.metadata
}

// MetadataValue returns a single metadata entry, or nil.
func (s *Stream) MetadataValue(key string) any {
	return s.Metadata()[key]
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *Stream) seeker(op string) (io.Seeker, error) {
	if s.resource == nil {
		return nil, s.fail(op, ErrNoResource)
	}
	seeker, ok := s.resource.(io.Seeker)
	if !ok {
		return nil, s.fail(op, errors.New("resource is not seekable"))
	}
	return seeker, nil
}

func (s *Stream) reader(op string) (io.Reader, error) {
	if s.resource == nil {
		return nil, s.fail(op, ErrNoResource)
	}
	r, ok := s.resource.(io.Reader)
	if !ok {
		return nil, s.fail(op, errors.New("resource is not readable"))
	}
	return r, nil
}

func (s *Stream) fail(op string, err error) error {
	uri, _ := s.MetadataValue(MetaURI).(string)
	return &Error{Op: op, URI: uri, Err: err}
}
