package uri

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Factory creates URIs from strings.
type Factory interface {
	CreateURI(text string) (URI, error)
}

// Parser is the default Factory. It delegates to Parse.
type Parser struct{}

// CreateURI implements Factory.
func (Parser) CreateURI(text string) (URI, error) { return Parse(text) }

// Parse splits text into its URI components.
//
// Every component comes from net/url: RawQuery, EscapedPath (or Opaque),
// EscapedFragment, User, Hostname and Port. Components missing from text
// keep their zero values ("" and port 0). Valid percent-encoding is kept as
// written, so Parse(s).String() == s for canonical input. Malformed escapes
// such as "/%zz" are an error, and "host.tld:8080" without a leading "//"
// reads as scheme "host.tld".
//
//	u, err := uri.Parse("https://user:pw@host.tld:8443/path?k=v#frag")
func Parse(text string) (URI, error) {
	if text == "" {
		return URI{}, nil
	}
	parsed, err := url.Parse(text)
	if err != nil {
		return URI{}, fmt.Errorf("uri: parse %q: %w", text, err)
	}

	u := URI{
		scheme:   parsed.Scheme,
		query:    parsed.RawQuery,
		fragment: parsed.EscapedFragment(),
	}

	if parsed.Opaque != "" {
		u.path = parsed.Opaque
	} else {
		u.path = parsed.EscapedPath()
	}

	if parsed.User != nil {
		user, password, _ := strings.Cut(parsed.User.String(), ":")
		u.user = user
		u.password = password
	}

	u.host = parsed.Hostname()
	if strings.Contains(u.host, ":") {
		u.host = "[" + u.host + "]"
	}
	if p := parsed.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return URI{}, fmt.Errorf("uri: parse %q: invalid port %q", text, p)
		}
		u.port = port
	}
	return u, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(text string) URI {
	u, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return u
}
