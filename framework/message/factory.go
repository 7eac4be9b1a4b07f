package message

import (
	"net/http"
	"sort"
	"strings"

	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

// ── Factory contracts ─────────────────────────────────────────────────────────

// RequestFactory creates requests.
type RequestFactory interface {
	CreateRequest(method string, u uri.URI) *Request
	CreateRequestFromString(method, rawURI string) (*Request, error)
}

// ResponseFactory creates responses.
type ResponseFactory interface {
	CreateResponse(code int, reason string) *Response
}

// ServerRequestFactory creates server requests.
type ServerRequestFactory interface {
	CreateServerRequest(method string, u uri.URI, serverParams map[string]string, globals Globals) *ServerRequest
	CreateServerRequestFromString(method, rawURI string, serverParams map[string]string, globals Globals) (*ServerRequest, error)
}

// UploadedFileFactory creates uploaded files.
type UploadedFileFactory interface {
	CreateUploadedFile(s *stream.Stream, size int64, errorCode int, clientFilename, clientMediaType string) *UploadedFile
}

// ── Requests ──────────────────────────────────────────────────────────────────

// DefaultRequestFactory is the stock RequestFactory.
type DefaultRequestFactory struct {
	URIs            uri.Factory
	ProtocolVersion string
}

// NewRequestFactory returns a RequestFactory parsing URIs with uri.Parse.
func NewRequestFactory() *DefaultRequestFactory {
	return &DefaultRequestFactory{URIs: uri.Parser{}, ProtocolVersion: DefaultProtocolVersion}
}

// CreateRequest returns a request whose target is the URI path.
func (f *DefaultRequestFactory) CreateRequest(method string, u uri.URI) *Request {
	req := NewRequest(method, u)
	req.target = u.Path()
	req.version = protocolOr(f.ProtocolVersion)
	return req
}

// CreateRequestFromString parses rawURI and calls CreateRequest.
func (f *DefaultRequestFactory) CreateRequestFromString(method, rawURI string) (*Request, error) {
	u, err := parseWith(f.URIs, rawURI)
	if err != nil {
		return nil, err
	}
	return f.CreateRequest(method, u), nil
}

// ── Responses ─────────────────────────────────────────────────────────────────

// DefaultResponseFactory is the stock ResponseFactory. It never fills in a
// reason phrase on its own.
type DefaultResponseFactory struct {
	ProtocolVersion string
}

// NewResponseFactory returns the stock ResponseFactory.
func NewResponseFactory() *DefaultResponseFactory {
	return &DefaultResponseFactory{ProtocolVersion: DefaultProtocolVersion}
}

// CreateResponse returns a response with the given status.
func (f *DefaultResponseFactory) CreateResponse(code int, reason string) *Response {
	res := NewResponse()
	res.statusCode = code
	res.reason = reason
	res.version = protocolOr(f.ProtocolVersion)
	return res
}

// ── Server requests ───────────────────────────────────────────────────────────

// ServerHeaderPrefix marks server params that carry request headers.
const ServerHeaderPrefix = "HTTP_"

// Globals is the per-request input a server request is populated from:
// decoded query string, parsed body, cookies and uploads.
type Globals struct {
	Query   Map
	Post    Value
	Cookies Map
	Files   []*UploadedFile
}

// DefaultServerRequestFactory is the stock ServerRequestFactory.
//
// Server params whose key starts with HTTP_ (any case) and whose value is not
// empty become headers: HTTP_USER_AGENT → User-Agent. The globals passed to
// each call fill the query params, parsed body, cookies and uploads, and the
// attributes start out as the query params overlaid with the body's
// top-level fields. The factory holds no per-request state.
type DefaultServerRequestFactory struct {
	URIs            uri.Factory
	ProtocolVersion string
}

// NewServerRequestFactory returns a ServerRequestFactory parsing URIs with
// uri.Parse.
func NewServerRequestFactory() *DefaultServerRequestFactory {
	return &DefaultServerRequestFactory{
		URIs:            uri.Parser{},
		ProtocolVersion: DefaultProtocolVersion,
	}
}

// CreateServerRequest returns a server request populated from serverParams
// and g whose target is the URI path.
func (f *DefaultServerRequestFactory) CreateServerRequest(method string, u uri.URI, serverParams map[string]string, g Globals) *ServerRequest {
	req := NewServerRequest(method, u, serverParams)
	req.target = u.Path()
	req.version = protocolOr(f.ProtocolVersion)
	req.headers = headersFromServer(serverParams)

	req.queryParams = g.Query.Clone()
	if req.queryParams == nil {
		req.queryParams = Map{}
	}
	req.cookieParams = g.Cookies.Clone()
	if req.cookieParams == nil {
		req.cookieParams = Map{}
	}
	req.parsedBody = cloneValue(g.Post)
	req.uploads = append([]*UploadedFile(nil), g.Files...)

	attrs := g.Query
	if post, ok := g.Post.(Map); ok {
		attrs = attrs.Merge(post)
	}
	for k, v := range attrs {
		req.attributes[k] = v
	}
	return req
}

// CreateServerRequestFromString parses rawURI and calls CreateServerRequest.
func (f *DefaultServerRequestFactory) CreateServerRequestFromString(method, rawURI string, serverParams map[string]string, g Globals) (*ServerRequest, error) {
	u, err := parseWith(f.URIs, rawURI)
	if err != nil {
		return nil, err
	}
	return f.CreateServerRequest(method, u, serverParams, g), nil
}

// headersFromServer extracts HTTP_* server params as headers, in key order.
func headersFromServer(serverParams map[string]string) headers {
	var h headers
	keys := make([]string, 0, len(serverParams))
	for key := range serverParams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := serverParams[key]
		if value == "" || len(key) <= len(ServerHeaderPrefix) ||
			!strings.EqualFold(key[:len(ServerHeaderPrefix)], ServerHeaderPrefix) {
			continue
		}
		name := http.CanonicalHeaderKey(strings.ReplaceAll(key[len(ServerHeaderPrefix):], "_", "-"))
		h = h.added(name, []string{value})
	}
	return h
}

// ── Uploaded files ────────────────────────────────────────────────────────────

// DefaultUploadedFileFactory is the stock UploadedFileFactory.
type DefaultUploadedFileFactory struct{}

// NewUploadedFileFactory returns the stock UploadedFileFactory.
func NewUploadedFileFactory() *DefaultUploadedFileFactory { return &DefaultUploadedFileFactory{} }

// CreateUploadedFile describes an upload. A size of 0 or less is replaced by
// the stream's size when the stream can report one.
func (f *DefaultUploadedFileFactory) CreateUploadedFile(s *stream.Stream, size int64, errorCode int, clientFilename, clientMediaType string) *UploadedFile {
	if size <= 0 {
		size = -1
		if s != nil {
			if n, ok := s.Size(); ok {
				size = n
			}
		}
	}
	return NewUploadedFile(s, size, errorCode, clientFilename, clientMediaType)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func parseWith(f uri.Factory, raw string) (uri.URI, error) {
	if f == nil {
		f = uri.Parser{}
	}
	return f.CreateURI(raw)
}

func protocolOr(version string) string {
	if version == "" {
		return DefaultProtocolVersion
	}
	return version
}
