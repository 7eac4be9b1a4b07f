package message

import (
	"maps"
	"slices"

	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

// ── ServerRequest ─────────────────────────────────────────────────────────────

// ServerRequest is an immutable incoming request as seen by the server.
//
// Server params are fixed at construction. Query params, cookies, the parsed
// body and uploads are replaced wholesale by their With* methods; attributes
// are a free-form bag for middleware to pass values down the pipeline.
type ServerRequest struct {
	Request
	serverParams map[string]string
	cookieParams Map
	queryParams  Map
	uploads      []*UploadedFile
	parsedBody   Value
	attributes   map[string]any
}

// NewServerRequest returns a server request with the given server params and
// everything else empty.
func NewServerRequest(method string, u uri.URI, serverParams map[string]string) *ServerRequest {
	return &ServerRequest{
		Request:      *NewRequest(method, u),
		serverParams: maps.Clone(serverParams),
		cookieParams: Map{},
		queryParams:  Map{},
		attributes:   map[string]any{},
	}
}

func (r *ServerRequest) clone() *ServerRequest {
	c := *r
	return &c
}

// ServerParams returns a copy of the server params.
func (r *ServerRequest) ServerParams() map[string]string { return maps.Clone(r.serverParams) }

// CookieParams returns a copy of the cookies.
func (r *ServerRequest) CookieParams() Map { return r.cookieParams.Clone() }

// QueryParams returns a copy of the query params.
func (r *ServerRequest) QueryParams() Map { return r.queryParams.Clone() }

// UploadedFiles returns the uploads in order.
func (r *ServerRequest) UploadedFiles() []*UploadedFile { return slices.Clone(r.uploads) }

// ParsedBody returns a copy of the parsed body: a Map, a List or nil.
func (r *ServerRequest) ParsedBody() Value { return cloneValue(r.parsedBody) }

// Attributes returns a copy of all attributes.
func (r *ServerRequest) Attributes() map[string]any { return maps.Clone(r.attributes) }

// Attribute returns the named attribute, or fallback[0] (nil without a
// fallback) when it is absent. Presence decides, not the value: a stored nil,
// 0, "" or false is returned as is.
//
//	id := req.Attribute("id", "0")
func (r *ServerRequest) Attribute(name string, fallback ...any) any {
	if v, ok := r.attributes[name]; ok {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return nil
}

// LookupAttribute returns the named attribute and whether it is present.
func (r *ServerRequest) LookupAttribute(name string) (any, bool) {
	v, ok := r.attributes[name]
	return v, ok
}

// WithCookieParams returns a copy with the cookies replaced.
func (r *ServerRequest) WithCookieParams(cookies Map) *ServerRequest {
	c := r.clone()
	c.cookieParams = cookies.Clone()
	return c
}

// WithQueryParams returns a copy with the query params replaced.
func (r *ServerRequest) WithQueryParams(query Map) *ServerRequest {
	c := r.clone()
	c.queryParams = query.Clone()
	return c
}

// WithUploadedFiles returns a copy with the uploads replaced.
func (r *ServerRequest) WithUploadedFiles(files []*UploadedFile) *ServerRequest {
	c := r.clone()
	c.uploads = slices.Clone(files)
	return c
}

// WithParsedBody returns a copy with the parsed body replaced.
func (r *ServerRequest) WithParsedBody(body Value) *ServerRequest {
	c := r.clone()
	c.parsedBody = cloneValue(body)
	return c
}

// WithAttribute returns a copy with the attribute set.
func (r *ServerRequest) WithAttribute(name string, value any) *ServerRequest {
	c := r.clone()
	c.attributes = maps.Clone(r.attributes)
	if c.attributes == nil {
		c.attributes = map[string]any{}
	}
	c.attributes[name] = value
	return c
}

// WithoutAttribute returns a copy without the attribute.
func (r *ServerRequest) WithoutAttribute(name string) *ServerRequest {
	c := r.clone()
	c.attributes = maps.Clone(r.attributes)
	delete(c.attributes, name)
	return c
}

// ── Request mutators ──────────────────────────────────────────────────────────

// WithRequestTarget returns a copy with the request target replaced.
func (r *ServerRequest) WithRequestTarget(target string) *ServerRequest {
	c := r.clone()
	c.Request = *r.Request.WithRequestTarget(target)
	return c
}

// WithMethod returns a copy with the method lowercased and replaced.
func (r *ServerRequest) WithMethod(method string) *ServerRequest {
	c := r.clone()
	c.Request = *r.Request.WithMethod(method)
	return c
}

// WithURI returns a copy with the URI replaced. See Request.WithURI.
func (r *ServerRequest) WithURI(u uri.URI, preserveHost ...bool) *ServerRequest {
	c := r.clone()
	c.Request = *r.Request.WithURI(u, preserveHost...)
	return c
}

// ── Message mutators ──────────────────────────────────────────────────────────

// WithProtocolVersion returns a copy with the protocol version replaced.
func (r *ServerRequest) WithProtocolVersion(version string) *ServerRequest {
	c := r.clone()
	c.Message = r.Message.withProtocolVersion(version)
	return c
}

// WithHeader returns a copy with the header replaced. See Message.WithHeader.
func (r *ServerRequest) WithHeader(name string, values ...string) *ServerRequest {
	c := r.clone()
	c.Message = r.Message.withHeader(name, values)
	return c
}

// WithAddedHeader returns a copy with values appended to the header.
func (r *ServerRequest) WithAddedHeader(name string, values ...string) *ServerRequest {
	c := r.clone()
	c.Message = r.Message.withAddedHeader(name, values)
	return c
}

// WithoutHeader returns a copy without the header.
func (r *ServerRequest) WithoutHeader(name string) *ServerRequest {
	c := r.clone()
	c.Message = r.Message.withoutHeader(name)
	return c
}

// WithBody returns a copy that shares body.
func (r *ServerRequest) WithBody(body *stream.Stream) *ServerRequest {
	c := r.clone()
	c.Message = r.Message.withBody(body)
	return c
}
