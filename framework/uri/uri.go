package uri

import (
	"strconv"
	"strings"
)

// Well-known schemes with a default port.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeFTP   = "ftp"
)

// defaultPorts maps a scheme to the port omitted from the rendered URI.
var defaultPorts = map[string]int{
	SchemeHTTP:  80,
	SchemeHTTPS: 443,
	SchemeFTP:   21,
}

// ── URI ───────────────────────────────────────────────────────────────────────

// URI is an immutable URI value.
//
// Every With* method returns a modified copy; the receiver is never changed.
// The zero value is the empty URI and renders as "".
//
//	u := uri.URI{}.WithScheme("https").WithHost("host.tld").WithPath("/a")
//	u.String() // "https://host.tld/a"
type URI struct {
	scheme   string
	user     string
	password string
	host     string
	port     int
	path     string
	query    string
	fragment string
}

// ── Accessors ─────────────────────────────────────────────────────────────────

// Scheme returns the lowercased scheme, or "".
func (u URI) Scheme() string { return u.scheme }

// Authority returns "[userinfo@]host[:port]", or "" when there is no host.
func (u URI) Authority() string {
	if u.host == "" {
		return ""
	}
	authority := u.host
	if info := u.UserInfo(); info != "" {
		authority = info + "@" + authority
	}
	if port, ok := u.Port(); ok {
		authority += ":" + strconv.Itoa(port)
	}
	return authority
}

// UserInfo returns "user" or "user:password".
func (u URI) UserInfo() string {
	if u.password == "" {
		return u.user
	}
	return u.user + ":" + u.password
}

// Host returns the host exactly as stored.
func (u URI) Host() string { return u.host }

// Port returns the explicit port. ok is false when no port is set or the
// port is the default for the current scheme.
func (u URI) Port() (port int, ok bool) {
	if u.port == 0 {
		return 0, false
	}
	if def, known := defaultPorts[u.scheme]; known && def == u.port {
		return 0, false
	}
	return u.port, true
}

// Path returns the path exactly as stored.
func (u URI) Path() string { return u.path }

// Query returns the query without surrounding '?' characters.
func (u URI) Query() string { return strings.Trim(u.query, "?") }

// Fragment returns the fragment without surrounding '#' characters.
func (u URI) Fragment() string { return strings.Trim(u.fragment, "#") }

// ── Mutators ──────────────────────────────────────────────────────────────────

// WithScheme returns a copy with the scheme lowercased and replaced.
func (u URI) WithScheme(scheme string) URI {
	u.scheme = strings.ToLower(scheme)
	return u
}

// WithUserInfo returns a copy with user and password replaced.
// An empty password drops the ":password" segment.
func (u URI) WithUserInfo(user, password string) URI {
	u.user = user
	u.password = password
	return u
}

// WithHost returns a copy with the host replaced.
func (u URI) WithHost(host string) URI {
	u.host = host
	return u
}

// WithPort returns a copy with the port replaced. 0 removes the port.
func (u URI) WithPort(port int) URI {
	u.port = port
	return u
}

// WithPath returns a copy with the path replaced.
func (u URI) WithPath(path string) URI {
	u.path = path
	return u
}

// WithQuery returns a copy with the query replaced.
func (u URI) WithQuery(query string) URI {
	u.query = query
	return u
}

// WithFragment returns a copy with the fragment replaced.
func (u URI) WithFragment(fragment string) URI {
	u.fragment = fragment
	return u
}

// ── Rendering ─────────────────────────────────────────────────────────────────

// String renders the URI as scheme, authority, path, query and fragment.
//
// A path starting with "/" has its leading slashes collapsed to one, and a
// relative path gets a "/" prefix when an authority is present, so
// "//path" and "path" render the same under a host.
func (u URI) String() string {
	var b strings.Builder

	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}

	authority := u.Authority()
	if authority != "" {
		b.WriteString("//")
		b.WriteString(authority)
	}

	switch {
	case strings.HasPrefix(u.path, "/"):
		b.WriteByte('/')
		b.WriteString(strings.TrimLeft(u.path, "/"))
	case authority != "":
		b.WriteByte('/')
		b.WriteString(u.path)
	default:
		b.WriteString(u.path)
	}

	if q := u.Query(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if f := u.Fragment(); f != "" {
		b.WriteByte('#')
		b.WriteString(f)
	}
	return b.String()
}

// DefaultPort returns the well-known port for scheme.
func DefaultPort(scheme string) (int, bool) {
	port, ok := defaultPorts[strings.ToLower(scheme)]
	return port, ok
}
