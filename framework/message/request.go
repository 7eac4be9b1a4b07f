package message

import (
	"strings"

	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

// ── Request ───────────────────────────────────────────────────────────────────

// Request is an immutable outgoing request.
//
// The method is stored lowercased. The request target is empty unless set
// explicitly or by a factory.
type Request struct {
	Message
	target string
	method string
	uri    uri.URI
}

// NewRequest returns a request for method and u. Unlike the factories it
// leaves the request target empty and the host header unset.
func NewRequest(method string, u uri.URI) *Request {
	return &Request{
		Message: newMessage(),
		method:  strings.ToLower(method),
		uri:     u,
	}
}

func (r *Request) clone() *Request {
	c := *r
	return &c
}

// RequestTarget returns the request target.
func (r *Request) RequestTarget() string { return r.target }

// Method returns the lowercased method.
func (r *Request) Method() string { return r.method }

// URI returns the request URI.
func (r *Request) URI() uri.URI { return r.uri }

// WithRequestTarget returns a copy with the request target replaced.
func (r *Request) WithRequestTarget(target string) *Request {
	c := r.clone()
	c.target = target
	return c
}

// WithMethod returns a copy with the method lowercased and replaced.
func (r *Request) WithMethod(method string) *Request {
	c := r.clone()
	c.method = strings.ToLower(method)
	return c
}

// WithURI returns a copy with the URI replaced.
//
// When the URI has a host, the host header is set to it. With preserveHost
// true, an existing host header is left untouched and only a missing one is
// filled in from the URI.
//
//	req.WithURI(u)        // host header := u.Host()
//	req.WithURI(u, true)  // host header := u.Host() only if absent
func (r *Request) WithURI(u uri.URI, preserveHost ...bool) *Request {
	c := r.clone()
	c.Message = r.syncHost(u, len(preserveHost) > 0 && preserveHost[0])
	c.uri = u
	return c
}

func (r *Request) syncHost(u uri.URI, preserveHost bool) Message {
	host := u.Host()
	if host == "" || (preserveHost && r.HasHeader(HeaderHost)) {
		return r.Message
	}
	return r.Message.withHeader(HeaderHost, []string{host})
}

// ── Message mutators ──────────────────────────────────────────────────────────

// WithProtocolVersion returns a copy with the protocol version replaced.
func (r *Request) WithProtocolVersion(version string) *Request {
	c := r.clone()
	c.Message = r.Message.withProtocolVersion(version)
	return c
}

// WithHeader returns a copy with the header replaced. See Message.WithHeader.
func (r *Request) WithHeader(name string, values ...string) *Request {
	c := r.clone()
	c.Message = r.Message.withHeader(name, values)
	return c
}

// WithAddedHeader returns a copy with values appended to the header.
func (r *Request) WithAddedHeader(name string, values ...string) *Request {
	c := r.clone()
	c.Message = r.Message.withAddedHeader(name, values)
	return c
}

// WithoutHeader returns a copy without the header.
func (r *Request) WithoutHeader(name string) *Request {
	c := r.clone()
	c.Message = r.Message.withoutHeader(name)
	return c
}

// WithBody returns a copy that shares body.
func (r *Request) WithBody(body *stream.Stream) *Request {
	c := r.clone()
	c.Message = r.Message.withBody(body)
	return c
}
