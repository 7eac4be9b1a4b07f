package message

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/km-arc/go-message/framework/stream"
)

// Upload status codes reported by UploadedFile.Error.
const (
	UploadOK           = 0 // no error
	UploadErrSizeLimit = 1 // exceeds the server-wide size limit
	UploadErrFormSize  = 2 // exceeds the size limit declared by the form
	UploadErrPartial   = 3 // only partially received
	UploadErrNoFile    = 4 // no file was sent
	UploadErrNoTmpDir  = 6 // no temporary directory to spool into
	UploadErrCantWrite = 7 // spooling to disk failed
	UploadErrExtension = 8 // stopped by a server extension
)

// ErrNoStream is returned by UploadedFile.Stream and MoveTo once the file
// has been moved.
var ErrNoStream = errors.New("message: no stream is available")

// InvalidDestinationError is returned by MoveTo when the file could not be
// moved to Path.
type InvalidDestinationError struct {
	Path string
	Err  error
}

func (e *InvalidDestinationError) Error() string {
	return fmt.Sprintf("message: could not move the uploaded file to %q: %v", e.Path, e.Err)
}

func (e *InvalidDestinationError) Unwrap() error { return e.Err }

// ── UploadedFile ──────────────────────────────────────────────────────────────

// UploadedFile describes one file received in a request.
//
// All fields are fixed at construction. MoveTo is the only state change: it
// moves the file the stream reads from, closes the stream and drops it, after
// which Stream and MoveTo return ErrNoStream.
type UploadedFile struct {
	stream          *stream.Stream
	size            int64
	sizeKnown       bool
	errorCode       int
	clientFilename  string
	clientMediaType string
}

// NewUploadedFile describes an upload. A negative size means unknown.
func NewUploadedFile(s *stream.Stream, size int64, errorCode int, clientFilename, clientMediaType string) *UploadedFile {
	return &UploadedFile{
		stream:          s,
		size:            size,
		sizeKnown:       size >= 0,
		errorCode:       errorCode,
		clientFilename:  clientFilename,
		clientMediaType: clientMediaType,
	}
}

// Stream returns the file's stream.
func (f *UploadedFile) Stream() (*stream.Stream, error) {
	if f.stream == nil {
		return nil, ErrNoStream
	}
	return f.stream, nil
}

// MoveTo moves the uploaded file to path. The source is the file named by
// the stream's "uri" metadata.
func (f *UploadedFile) MoveTo(path string) error {
	if f.stream == nil {
		return ErrNoStream
	}
	source, _ := f.stream.MetadataValue(stream.MetaURI).(string)
	if source == "" {
		return &InvalidDestinationError{Path: path, Err: errors.New("stream is not backed by a file")}
	}
	if err := moveFile(source, path); err != nil {
		return &InvalidDestinationError{Path: path, Err: err}
	}
	_ = f.stream.Close()
	f.stream = nil
	return nil
}

// Size returns the size in bytes; ok is false when it is unknown.
func (f *UploadedFile) Size() (size int64, ok bool) { return f.size, f.sizeKnown }

// Error returns the upload status code, UploadOK on success.
func (f *UploadedFile) Error() int { return f.errorCode }

// ClientFilename returns the file name sent by the client.
func (f *UploadedFile) ClientFilename() string { return f.clientFilename }

// ClientMediaType returns the media type sent by the client.
func (f *UploadedFile) ClientMediaType() string { return f.clientMediaType }

// moveFile renames source to target, copying across filesystems when a
// rename is not possible.
func moveFile(source, target string) error {
	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return nil
	}
	if err := copyFile(source, target); err != nil {
		return renameErr
	}
	return os.Remove(source)
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
