package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

const maxMemory = 32 << 20 // 32 MB

// Server param keys set by Capture besides the HTTP_* headers.
const (
	ServerRequestMethod = "REQUEST_METHOD"
	ServerRequestURI    = "REQUEST_URI"
	ServerProtocol      = "SERVER_PROTOCOL"
	ServerName          = "SERVER_NAME"
	ServerRemoteAddr    = "REMOTE_ADDR"
	ServerQueryString   = "QUERY_STRING"
	ServerHTTPS         = "HTTPS"
	ServerContentType   = "CONTENT_TYPE"
	ServerContentLength = "CONTENT_LENGTH"
)

// CaptureOptions tunes Capture. The zero value is usable.
type CaptureOptions struct {
	// MaxMemory is the number of multipart bytes kept in memory; the rest
	// spills to temporary files. Defaults to 32 MB.
	MaxMemory int64

	// UploadDir receives a copy of every uploaded file, named by a random
	// UUID. Defaults to os.TempDir().
	UploadDir string

	Streams  stream.Factory
	Uploads  message.UploadedFileFactory
	Requests message.ServerRequestFactory
	URIs     uri.Factory
}

func (o CaptureOptions) withDefaults() CaptureOptions {
	if o.MaxMemory <= 0 {
		o.MaxMemory = maxMemory
	}
	if o.UploadDir == "" {
		o.UploadDir = os.TempDir()
	}
	if o.Streams == nil {
		o.Streams = stream.NewFactory()
	}
	if o.Uploads == nil {
		o.Uploads = message.NewUploadedFileFactory()
	}
	if o.Requests == nil {
		o.Requests = message.NewServerRequestFactory()
	}
	if o.URIs == nil {
		o.URIs = uri.Parser{}
	}
	return o
}

// Capture turns an incoming *http.Request into a *message.ServerRequest.
//
// Server params follow the CGI naming: REQUEST_METHOD, REQUEST_URI, REMOTE_ADDR
// and so on, plus one HTTP_* entry per request header, from which the
// ServerRequestFactory derives the message headers. The query string,
// cookies and body become the query params, cookie params and parsed body;
// url-encoded, multipart and JSON bodies are decoded. Multipart files are
// copied into opts.UploadDir and exposed as uploaded files. Route parameters
// matched by chi are added as attributes.
//
// The raw body is available as the message body for every content type
// except multipart, whose parts are consumed while parsing.
func Capture(r *http.Request, opts CaptureOptions) (*message.ServerRequest, error) {
	opts = opts.withDefaults()

	u, err := requestURI(r, opts.URIs)
	if err != nil {
		return nil, err
	}

	globals := message.Globals{
		Query:   message.FromValues(r.URL.Query()),
		Cookies: cookies(r),
	}

	body, err := opts.Streams.CreateStream("")
	if err != nil {
		return nil, err
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(opts.MaxMemory); err != nil {
			return nil, fmt.Errorf("parse multipart body: %w", err)
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		globals.Post = message.FromValues(r.MultipartForm.Value)
		globals.Files = spoolUploads(r.MultipartForm.File, opts)
	default:
		raw, err := readBody(r)
		if err != nil {
			return nil, err
		}
		if globals.Post, err = parseBody(mediaType, raw); err != nil {
			return nil, err
		}
		if body, err = opts.Streams.CreateStream(string(raw)); err != nil {
			return nil, err
		}
	}

	req := opts.Requests.CreateServerRequest(r.Method, u, serverParams(r), globals).
		WithProtocolVersion(protocolVersion(r)).
		WithBody(body)
	req = withRepeatedHeaders(req, r.Header)
	return withRouteParams(req, r), nil
}

// ── server params ─────────────────────────────────────────────────────────────

func serverParams(r *http.Request) map[string]string {
	params := map[string]string{
		ServerRequestMethod: r.Method,
		ServerRequestURI:    r.URL.RequestURI(),
		ServerProtocol:      r.Proto,
		ServerName:          hostname(r.Host),
		ServerRemoteAddr:    r.RemoteAddr,
		ServerQueryString:   r.URL.RawQuery,
	}
	if r.TLS != nil {
		params[ServerHTTPS] = "on"
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		params[ServerContentType] = ct
	}
	if r.ContentLength > 0 {
		params[ServerContentLength] = strconv.FormatInt(r.ContentLength, 10)
	}
	for name, values := range r.Header {
		params[serverHeaderKey(name)] = strings.Join(values, ", ")
	}
	// net/http moves Host out of the header map.
	if r.Host != "" {
		params[serverHeaderKey("Host")] = r.Host
	}
	return params
}

// withRepeatedHeaders restores the separate values of headers that were sent
// more than once. Server params hold them joined with ", " as CGI does.
func withRepeatedHeaders(req *message.ServerRequest, h http.Header) *message.ServerRequest {
	names := make([]string, 0, len(h))
	for name, values := range h {
		if len(values) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		req = req.WithHeader(name, h[name]...)
	}
	return req
}

func serverHeaderKey(name string) string {
	return message.ServerHeaderPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func hostname(host string) string {
	if u, err := url.Parse("//" + host); err == nil {
		return u.Hostname()
	}
	return host
}

func protocolVersion(r *http.Request) string {
	if r.ProtoMajor == 0 {
		return message.DefaultProtocolVersion
	}
	return fmt.Sprintf("%d.%d", r.ProtoMajor, r.ProtoMinor)
}

func requestURI(r *http.Request, uris uri.Factory) (uri.URI, error) {
	scheme := uri.SchemeHTTP
	if r.TLS != nil {
		scheme = uri.SchemeHTTPS
	}
	text := r.URL.RequestURI()
	if r.Host != "" {
		text = scheme + "://" + r.Host + text
	}
	u, err := uris.CreateURI(text)
	if err != nil {
		return uri.URI{}, fmt.Errorf("parse request uri: %w", err)
	}
	return u, nil
}

func cookies(r *http.Request) message.Map {
	out := message.Map{}
	for _, c := range r.Cookies() {
		out[c.Name] = message.String(c.Value)
	}
	return out
}

// ── body ──────────────────────────────────────────────────────────────────────

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer r.Body.Close()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return raw, nil
}

// parseBody decodes url-encoded and JSON bodies. Other media types and
// empty bodies have no parsed form.
func parseBody(mediaType string, raw []byte) (message.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse form body: %w", err)
		}
		return message.FromValues(values), nil
	case mediaType == ContentTypeJSON || strings.HasSuffix(mediaType, "+json"):
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("parse json body: %w", err)
		}
		return message.FromNative(decoded), nil
	}
	return nil, nil
}

// ── uploads ───────────────────────────────────────────────────────────────────

// spoolUploads copies every uploaded file into opts.UploadDir, field by field
// in name order.
func spoolUploads(files map[string][]*multipart.FileHeader, opts CaptureOptions) []*message.UploadedFile {
	fields := make([]string, 0, len(files))
	for field := range files {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []*message.UploadedFile
	for _, field := range fields {
		for _, fh := range files[field] {
			out = append(out, spoolUpload(fh, opts))
		}
	}
	return out
}

// spoolUpload copies one file. A failure is reported through the upload's
// error code rather than failing the whole request.
func spoolUpload(fh *multipart.FileHeader, opts CaptureOptions) *message.UploadedFile {
	mediaType := fh.Header.Get("Content-Type")

	path, err := copyUpload(fh, opts.UploadDir)
	if err != nil {
		code := message.UploadErrCantWrite
		if errors.Is(err, os.ErrNotExist) {
			code = message.UploadErrNoTmpDir
		}
		return opts.Uploads.CreateUploadedFile(nil, fh.Size, code, fh.Filename, mediaType)
	}

	s, err := opts.Streams.CreateStreamFromFile(path, "rb")
	if err != nil {
		_ = os.Remove(path)
		return opts.Uploads.CreateUploadedFile(nil, fh.Size, message.UploadErrCantWrite, fh.Filename, mediaType)
	}
	return opts.Uploads.CreateUploadedFile(s, fh.Size, message.UploadOK, fh.Filename, mediaType)
}

func copyUpload(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, uuid.NewString()+".upload")
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// ── routing ───────────────────────────────────────────────────────────────────

func withRouteParams(req *message.ServerRequest, r *http.Request) *message.ServerRequest {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return req
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "" || i >= len(rctx.URLParams.Values) {
			continue
		}
		req = req.WithAttribute(key, rctx.URLParams.Values[i])
	}
	return req
}

// Cleanup closes and deletes the spooled files of uploads that were not
// moved out of the upload directory. Call it once the request is handled.
func Cleanup(req *message.ServerRequest) {
	for _, f := range req.UploadedFiles() {
		s, err := f.Stream()
		if err != nil {
			continue
		}
		path, _ := s.MetadataValue(stream.MetaURI).(string)
		_ = s.Close()
		if path != "" {
			_ = os.Remove(path)
		}
	}
}
