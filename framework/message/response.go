package message

import "github.com/km-arc/go-message/framework/stream"

// ── Response ──────────────────────────────────────────────────────────────────

// Response is an immutable HTTP response.
//
// The reason phrase is never derived from the status code; it is whatever
// was passed to WithStatus, "" by default.
type Response struct {
	Message
	statusCode int
	reason     string
}

// NewResponse returns a 200 response with an empty body.
func NewResponse() *Response {
	return &Response{Message: newMessage(), statusCode: 200}
}

func (r *Response) clone() *Response {
	c := *r
	return &c
}

// StatusCode returns the status code.
func (r *Response) StatusCode() int { return r.statusCode }

// ReasonPhrase returns the reason phrase.
func (r *Response) ReasonPhrase() string { return r.reason }

// WithStatus returns a copy with the status code and reason phrase replaced.
// The code is not validated.
//
//	res.WithStatus(404)               // reason ""
//	res.WithStatus(418, "I'm a teapot")
func (r *Response) WithStatus(code int, reason ...string) *Response {
	c := r.clone()
	c.statusCode = code
	c.reason = ""
	if len(reason) > 0 {
		c.reason = reason[0]
	}
	return c
}

// ── Message mutators ──────────────────────────────────────────────────────────

// WithProtocolVersion returns a copy with the protocol version replaced.
func (r *Response) WithProtocolVersion(version string) *Response {
	c := r.clone()
	c.Message = r.Message.withProtocolVersion(version)
	return c
}

// WithHeader returns a copy with the header replaced. See Message.WithHeader.
func (r *Response) WithHeader(name string, values ...string) *Response {
	c := r.clone()
	c.Message = r.Message.withHeader(name, values)
	return c
}

// WithAddedHeader returns a copy with values appended to the header.
func (r *Response) WithAddedHeader(name string, values ...string) *Response {
	c := r.clone()
	c.Message = r.Message.withAddedHeader(name, values)
	return c
}

// WithoutHeader returns a copy without the header.
func (r *Response) WithoutHeader(name string) *Response {
	c := r.clone()
	c.Message = r.Message.withoutHeader(name)
	return c
}

// WithBody returns a copy that shares body.
func (r *Response) WithBody(body *stream.Stream) *Response {
	c := r.clone()
	c.Message = r.Message.withBody(body)
	return c
}
