package message

import (
	"slices"
	"strings"

	"github.com/km-arc/go-message/framework/stream"
)

// HeaderHost is the header kept in sync with the request URI by WithURI.
const HeaderHost = "host"

// DefaultProtocolVersion is the protocol version of newly created messages.
const DefaultProtocolVersion = "1.1"

// ── Message ───────────────────────────────────────────────────────────────────

// Message is an immutable HTTP message.
//
// Every With* method returns a new *Message and leaves the receiver as it
// was. The body stream is the one exception to value semantics: it is
// shared, not copied, so writes to it are visible through every message
// that references it.
//
//	msg := message.NewMessage().
//	    WithHeader("Content-Type", "text/plain").
//	    WithAddedHeader("Accept", "text/html", "application/json")
//
//	msg.HeaderLine("accept") // "text/html,application/json"
type Message struct {
	version string
	headers headers
	body    *stream.Stream
}

// NewMessage returns an empty message with an empty in-memory body.
func NewMessage() *Message {
	m := newMessage()
	return &m
}

func newMessage() Message {
	return Message{
		version: DefaultProtocolVersion,
		body:    stream.New(stream.NewMemory()),
	}
}

// ── Accessors ─────────────────────────────────────────────────────────────────

// ProtocolVersion returns the HTTP protocol version, e.g. "1.1".
func (m *Message) ProtocolVersion() string { return m.version }

// Headers returns a copy of all headers keyed by their stored name.
func (m *Message) Headers() map[string][]string { return m.headers.all() }

// HeaderNames returns the stored header names in insertion order.
func (m *Message) HeaderNames() []string { return slices.Clone(m.headers.names) }

// HasHeader reports whether a header exists, ignoring case.
func (m *Message) HasHeader(name string) bool { return m.headers.has(name) }

// Header returns the values of a header, ignoring case. A missing header
// yields an empty slice.
func (m *Message) Header(name string) []string { return m.headers.get(name) }

// HeaderLine returns the values of a header joined by ",". A missing header
// yields "".
func (m *Message) HeaderLine(name string) string {
	return strings.Join(m.headers.get(name), ",")
}

// Body returns the shared body stream.
func (m *Message) Body() *stream.Stream { return m.body }

// ── Mutators ──────────────────────────────────────────────────────────────────

// WithProtocolVersion returns a copy with the protocol version replaced.
func (m *Message) WithProtocolVersion(version string) *Message {
	c := m.withProtocolVersion(version)
	return &c
}

// WithHeader returns a copy with the header replaced by values. A header
// already stored under another case is removed first, so name becomes the
// stored spelling. Passing no values removes the header.
func (m *Message) WithHeader(name string, values ...string) *Message {
	c := m.withHeader(name, values)
	return &c
}

// WithAddedHeader returns a copy with values appended to the header, which
// is then stored under name's spelling.
func (m *Message) WithAddedHeader(name string, values ...string) *Message {
	c := m.withAddedHeader(name, values)
	return &c
}

// WithoutHeader returns a copy without the header. A missing header still
// yields a new message.
func (m *Message) WithoutHeader(name string) *Message {
	c := m.withoutHeader(name)
	return &c
}

// WithBody returns a copy that shares body.
func (m *Message) WithBody(body *stream.Stream) *Message {
	c := m.withBody(body)
	return &c
}

// The value-returning variants below carry the copy-on-write logic for
// Message and every type that embeds it.

func (m Message) withProtocolVersion(version string) Message {
	m.version = version
	return m
}

func (m Message) withHeader(name string, values []string) Message {
	m.headers = m.headers.with(name, values)
	return m
}

func (m Message) withAddedHeader(name string, values []string) Message {
	m.headers = m.headers.added(name, values)
	return m
}

func (m Message) withoutHeader(name string) Message {
	m.headers = m.headers.without(name)
	return m
}

func (m Message) withBody(body *stream.Stream) Message {
	m.body = body
	return m
}
