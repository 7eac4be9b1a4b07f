package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-message/framework/http"
	"github.com/km-arc/go-message/framework/message"
)

type userPayload struct {
	Name  string   `json:"name"`
	Age   int      `json:"age"`
	Admin bool     `json:"admin"`
	Tags  []string `json:"tags"`
}

func TestBind_JSON(t *testing.T) {
	req := capture(t, newJSONRequest(`{"name":"Alice","age":30,"admin":true,"tags":["a","b"]}`))

	var got userPayload
	require.NoError(t, gohttp.Bind(req, &got))
	assert.Equal(t, userPayload{Name: "Alice", Age: 30, Admin: true, Tags: []string{"a", "b"}}, got)
}

func TestBind_FormIsWeaklyTyped(t *testing.T) {
	req := capture(t, newFormRequest(url.Values{"name": {"Bob"}, "age": {"41"}, "admin": {"1"}}))

	var got userPayload
	require.NoError(t, gohttp.Bind(req, &got))
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, 41, got.Age)
	assert.True(t, got.Admin)
}

func TestBind_EmptyBody(t *testing.T) {
	req := capture(t, httptest.NewRequest(http.MethodGet, "/", nil))

	var got userPayload
	assert.ErrorIs(t, gohttp.Bind(req, &got), gohttp.ErrEmptyBody)
}

func TestBind_TypeMismatch(t *testing.T) {
	req := capture(t, newJSONRequest(`{"age":{"years":3}}`))

	var got userPayload
	assert.ErrorContains(t, gohttp.Bind(req, &got), "bind request")
}

func TestBindQuery(t *testing.T) {
	req := capture(t, httptest.NewRequest(http.MethodGet, "/?name=Carol&age=7", nil))

	var got userPayload
	require.NoError(t, gohttp.BindQuery(req, &got))
	assert.Equal(t, "Carol", got.Name)
	assert.Equal(t, 7, got.Age)
}

func TestInputHelpers(t *testing.T) {
	r := newJSONRequest(`{"name":"Alice","empty":""}`)
	r.Header.Set("Authorization", "Bearer s3cr3t")
	r.RemoteAddr = "192.0.2.1:1234"
	req := capture(t, r)

	assert.Equal(t, "Alice", gohttp.Input(req, "name"))
	assert.Equal(t, "2", gohttp.Input(req, "page"), "falls back to the query")
	assert.Equal(t, "none", gohttp.Input(req, "missing", "none"))
	assert.Equal(t, "2", gohttp.Query(req, "page", "1"))
	assert.Equal(t, "1", gohttp.Query(req, "per_page", "1"))

	assert.True(t, gohttp.Has(req, "name"))
	assert.False(t, gohttp.Has(req, "empty"))

	all := gohttp.All(req)
	assert.Equal(t, []string{"empty", "name", "page"}, all.Keys())

	assert.Equal(t, "s3cr3t", gohttp.BearerToken(req))
	assert.Equal(t, "192.0.2.1:1234", gohttp.IP(req))
	assert.Equal(t, "application/json", gohttp.ContentType(req))
	assert.True(t, gohttp.IsJSON(req))
}

func TestAll_BodyWins(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/?name=query&page=3", nil)
	req := capture(t, r).WithParsedBody(message.Map{"name": message.String("body")})

	all := gohttp.All(req)
	assert.Equal(t, message.String("body"), all["name"])
	assert.Equal(t, message.String("3"), all["page"])
}

func TestBearerToken_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req := capture(t, r)

	assert.Empty(t, gohttp.BearerToken(req))
	assert.False(t, gohttp.IsJSON(req))
}

func TestFile(t *testing.T) {
	req := capture(t, newMultipartRequest(t, nil, part{"doc", "a.txt", "x"}))
	t.Cleanup(func() { gohttp.Cleanup(req) })

	f, ok := gohttp.File(req, "a.txt")
	require.True(t, ok)
	assert.Equal(t, message.UploadOK, f.Error())

	_, ok = gohttp.File(req, "b.txt")
	assert.False(t, ok)
}
