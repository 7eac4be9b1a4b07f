package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/km-arc/go-message/framework/message"
)

// ErrEmptyBody is returned by Bind when the request has no parsed body.
var ErrEmptyBody = errors.New("empty request body")

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the parsed body into v, matching fields by their `json` tag.
// Input is weakly typed, so the strings of a url-encoded form decode into
// numeric and bool fields.
//
//	var payload struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//	err := http.Bind(req, &payload)
func Bind(req *message.ServerRequest, v any) error {
	body := req.ParsedBody()
	if body == nil {
		return ErrEmptyBody
	}
	return decode(message.Native(body), v)
}

// BindQuery decodes the query params into v like Bind.
func BindQuery(req *message.ServerRequest, v any) error {
	return decode(req.QueryParams().Native(), v)
}

func decode(input any, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("bind request: %w", err)
	}
	return nil
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value, looking at the parsed body first and
// the query params second.
func Input(req *message.ServerRequest, key string, fallback ...string) string {
	if body, ok := req.ParsedBody().(message.Map); ok && body.Has(key) {
		if v := body.String(key); v != "" {
			return v
		}
	}
	return Query(req, key, fallback...)
}

// Query returns a query-string value.
func Query(req *message.ServerRequest, key string, fallback ...string) string {
	v := req.QueryParams().String(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns all input as one map, body fields winning over query params.
func All(req *message.ServerRequest) message.Map {
	all := req.QueryParams()
	if body, ok := req.ParsedBody().(message.Map); ok {
		all = all.Merge(body)
	}
	return all
}

// Has returns true if the key is present and non-empty.
func Has(req *message.ServerRequest, key string) bool {
	return Input(req, key) != ""
}

// RouteParam returns a URL route parameter captured by the router.
func RouteParam(req *message.ServerRequest, key string) string {
	v, _ := req.Attribute(key).(string)
	return v
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func BearerToken(req *message.ServerRequest) string {
	auth := req.HeaderLine("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// IP returns the client address (respects the RealIP middleware).
func IP(req *message.ServerRequest) string {
	return req.ServerParams()[ServerRemoteAddr]
}

// ContentType returns the Content-Type header value.
func ContentType(req *message.ServerRequest) string {
	return req.HeaderLine("Content-Type")
}

// IsJSON returns true when the request sends or expects JSON.
func IsJSON(req *message.ServerRequest) bool {
	return strings.Contains(req.HeaderLine("Accept"), ContentTypeJSON) ||
		strings.Contains(ContentType(req), ContentTypeJSON)
}

// File returns the first upload whose client file name is name.
func File(req *message.ServerRequest, name string) (*message.UploadedFile, bool) {
	for _, f := range req.UploadedFiles() {
		if f.ClientFilename() == name {
			return f, true
		}
	}
	return nil, false
}
