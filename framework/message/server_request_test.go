package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/uri"
)

func newServerRequest() *message.ServerRequest {
	return message.NewServerRequest("GET", uri.MustParse("http://a.tld/users"), map[string]string{
		"REQUEST_METHOD": "GET",
	})
}

func TestServerRequest_ServerParamsAreCopies(t *testing.T) {
	params := map[string]string{"REMOTE_ADDR": "127.0.0.1"}
	req := message.NewServerRequest("get", uri.URI{}, params)
	params["REMOTE_ADDR"] = "changed"

	got := req.ServerParams()
	assert.Equal(t, "127.0.0.1", got["REMOTE_ADDR"])
	got["REMOTE_ADDR"] = "changed again"
	assert.Equal(t, "127.0.0.1", req.ServerParams()["REMOTE_ADDR"])
}

func TestServerRequest_Defaults(t *testing.T) {
	req := newServerRequest()

	assert.Empty(t, req.CookieParams())
	assert.Empty(t, req.QueryParams())
	assert.Empty(t, req.UploadedFiles())
	assert.Nil(t, req.ParsedBody())
	assert.Empty(t, req.Attributes())
}

// ── Attributes ────────────────────────────────────────────────────────────────

func TestServerRequest_Attribute(t *testing.T) {
	req := newServerRequest().
		WithAttribute("id", 42).
		WithAttribute("zero", 0).
		WithAttribute("nil", nil)

	assert.Equal(t, 42, req.Attribute("id"))
	assert.Equal(t, 0, req.Attribute("zero", 7), "stored zero value wins over the fallback")
	assert.Nil(t, req.Attribute("nil", "fallback"), "stored nil wins over the fallback")
	assert.Equal(t, "fallback", req.Attribute("missing", "fallback"))
	assert.Nil(t, req.Attribute("missing"))

	v, ok := req.LookupAttribute("nil")
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = req.LookupAttribute("missing")
	assert.False(t, ok)
}

func TestServerRequest_WithAttributeIsolation(t *testing.T) {
	base := newServerRequest().WithAttribute("a", 1)
	derived := base.WithAttribute("b", 2)
	removed := derived.WithoutAttribute("a")

	assert.Equal(t, map[string]any{"a": 1}, base.Attributes())
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, derived.Attributes())
	assert.Equal(t, map[string]any{"b": 2}, removed.Attributes())

	same := removed.WithoutAttribute("missing")
	assert.NotSame(t, removed, same)
	assert.Equal(t, removed.Attributes(), same.Attributes())
}

// ── Params ────────────────────────────────────────────────────────────────────

func TestServerRequest_WithParams(t *testing.T) {
	base := newServerRequest()

	query := message.Map{"page": message.String("2")}
	cookies := message.Map{"session": message.String("abc")}
	body := message.Map{"name": message.String("Ada"), "tags": message.List{message.String("x")}}

	req := base.
		WithQueryParams(query).
		WithCookieParams(cookies).
		WithParsedBody(body)

	query["page"] = message.String("mutated")
	body["name"] = message.String("mutated")

	assert.Equal(t, message.Map{"page": message.String("2")}, req.QueryParams())
	assert.Equal(t, message.Map{"session": message.String("abc")}, req.CookieParams())
	assert.Equal(t, "Ada", req.ParsedBody().(message.Map).String("name"))
	assert.Empty(t, base.QueryParams())

	cleared := req.WithParsedBody(nil)
	assert.Nil(t, cleared.ParsedBody())
}

func TestServerRequest_WithUploadedFiles(t *testing.T) {
	file := message.NewUploadedFile(nil, 3, message.UploadOK, "a.txt", "text/plain")
	files := []*message.UploadedFile{file}

	req := newServerRequest().WithUploadedFiles(files)
	files[0] = nil

	got := req.UploadedFiles()
	if assert.Len(t, got, 1) {
		assert.Same(t, file, got[0])
	}
}

func TestServerRequest_InheritedMutatorsKeepState(t *testing.T) {
	req := newServerRequest().
		WithAttribute("id", "7").
		WithQueryParams(message.Map{"q": message.String("go")}).
		WithMethod("POST").
		WithRequestTarget("/users/7").
		WithURI(uri.MustParse("http://b.tld/users/7")).
		WithHeader("Accept", "application/json").
		WithProtocolVersion("2")

	assert.Equal(t, "post", req.Method())
	assert.Equal(t, "/users/7", req.RequestTarget())
	assert.Equal(t, "b.tld", req.HeaderLine("host"))
	assert.Equal(t, "application/json", req.HeaderLine("accept"))
	assert.Equal(t, "2", req.ProtocolVersion())
	assert.Equal(t, "7", req.Attribute("id"))
	assert.Equal(t, "go", req.QueryParams().String("q"))
	assert.Equal(t, "GET", req.ServerParams()["REQUEST_METHOD"])
}
