package stream

// Factory creates streams.
type Factory interface {
	CreateStream(content string) (*Stream, error)
	CreateStreamFromFile(path, mode string) (*Stream, error)
	CreateStreamFromResource(res Resource) *Stream
}

// DefaultMode is the open mode used when none is given.
const DefaultMode = "rb"

// DefaultFactory is the stock Factory. Mode overrides DefaultMode for
// CreateStreamFromFile calls that pass an empty mode.
type DefaultFactory struct {
	Mode string
}

// NewFactory returns the stock Factory.
func NewFactory() *DefaultFactory { return &DefaultFactory{Mode: DefaultMode} }

// CreateStream returns an in-memory stream holding content, rewound to the start.
func (f *DefaultFactory) CreateStream(content string) (*Stream, error) {
	s := f.CreateStreamFromResource(NewMemory())
	if content == "" {
		return s, nil
	}
	if _, err := s.WriteString(content); err != nil {
		return nil, err
	}
	if err := s.Rewind(); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStreamFromFile opens path with an fopen-style mode (f.Mode when empty).
// When path is empty or cannot be opened, an anonymous temporary file opened
// with the same mode is used instead so a usable stream is always returned.
// The error is non-nil only when mode is invalid or no temp file can be made.
func (f *DefaultFactory) CreateStreamFromFile(path, mode string) (*Stream, error) {
	if mode == "" {
		mode = f.Mode
	}
	if mode == "" {
		mode = DefaultMode
	}
	if path != "" {
		if res, err := OpenFile(path, mode); err == nil {
			return f.CreateStreamFromResource(res), nil
		}
	}
	res, err := OpenTemp(mode)
	if err != nil {
		return nil, err
	}
	return f.CreateStreamFromResource(res), nil
}

// CreateStreamFromResource wraps an existing resource.
func (f *DefaultFactory) CreateStreamFromResource(res Resource) *Stream {
	return New(res)
}
