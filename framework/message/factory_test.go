package message_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

// ── Request factory ───────────────────────────────────────────────────────────

func TestRequestFactory_CreateRequest(t *testing.T) {
	var f message.RequestFactory = message.NewRequestFactory()

	req := f.CreateRequest("PUT", uri.MustParse("https://a.tld/users/7?x=1"))
	assert.Equal(t, "put", req.Method())
	assert.Equal(t, "/users/7", req.RequestTarget())
	assert.Equal(t, "https://a.tld/users/7?x=1", req.URI().String())
	assert.Equal(t, "1.1", req.ProtocolVersion())
}

func TestRequestFactory_FromString(t *testing.T) {
	f := message.NewRequestFactory()

	req, err := f.CreateRequestFromString("GET", "http://a.tld/path")
	require.NoError(t, err)
	assert.Equal(t, "/path", req.RequestTarget())

	_, err = f.CreateRequestFromString("GET", "http://[::1")
	assert.Error(t, err)
}

func TestRequestFactory_ProtocolVersion(t *testing.T) {
	f := &message.DefaultRequestFactory{ProtocolVersion: "2"}
	req, err := f.CreateRequestFromString("GET", "/")
	require.NoError(t, err)
	assert.Equal(t, "2", req.ProtocolVersion())
}

type stubURIs struct{ err error }

func (s stubURIs) CreateURI(string) (uri.URI, error) {
	return uri.URI{}.WithPath("/stub"), s.err
}

func TestRequestFactory_UsesURIFactory(t *testing.T) {
	f := &message.DefaultRequestFactory{URIs: stubURIs{}}
	req, err := f.CreateRequestFromString("GET", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "/stub", req.RequestTarget())

	boom := errors.New("boom")
	f.URIs = stubURIs{err: boom}
	_, err = f.CreateRequestFromString("GET", "ignored")
	assert.ErrorIs(t, err, boom)
}

// ── Response factory ──────────────────────────────────────────────────────────

func TestResponseFactory_CreateResponse(t *testing.T) {
	var f message.ResponseFactory = message.NewResponseFactory()

	res := f.CreateResponse(404, "")
	assert.Equal(t, 404, res.StatusCode())
	assert.Equal(t, "", res.ReasonPhrase())

	res = f.CreateResponse(201, "Created")
	assert.Equal(t, "Created", res.ReasonPhrase())
}

// ── Server request factory ────────────────────────────────────────────────────

func TestServerRequestFactory_HeadersFromServerParams(t *testing.T) {
	f := message.NewServerRequestFactory()

	req := f.CreateServerRequest("GET", uri.MustParse("http://a.tld/x"), map[string]string{
		"HTTP_USER_AGENT":      "curl/8.0",
		"http_accept_language": "en",
		"HTTP_X_EMPTY":         "",
		"HTTP_":                "nameless",
		"REQUEST_METHOD":       "GET",
		"SERVER_HTTP_THING":    "no",
	}, message.Globals{})

	want := map[string][]string{
		"User-Agent":      {"curl/8.0"},
		"Accept-Language": {"en"},
	}
	if diff := cmp.Diff(want, req.Headers()); diff != "" {
		t.Errorf("Headers() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/x", req.RequestTarget())
	assert.Equal(t, "get", req.Method())
	assert.Equal(t, "GET", req.ServerParams()["REQUEST_METHOD"])
}

func TestServerRequestFactory_Globals(t *testing.T) {
	upload := message.NewUploadedFile(nil, 1, message.UploadOK, "a", "")
	globals := message.Globals{
		Query:   message.Map{"page": message.String("1"), "id": message.String("from-query")},
		Post:    message.Map{"id": message.String("from-body"), "name": message.String("Ada")},
		Cookies: message.Map{"sid": message.String("s")},
		Files:   []*message.UploadedFile{upload},
	}

	req, err := message.NewServerRequestFactory().CreateServerRequestFromString("POST", "/users?page=1", nil, globals)
	require.NoError(t, err)

	assert.Equal(t, "1", req.QueryParams().String("page"))
	assert.Equal(t, "s", req.CookieParams().String("sid"))
	assert.Equal(t, "Ada", req.ParsedBody().(message.Map).String("name"))
	require.Len(t, req.UploadedFiles(), 1)
	assert.Same(t, upload, req.UploadedFiles()[0])

	assert.Equal(t, message.String("from-body"), req.Attribute("id"), "body fields win over query params")
	assert.Equal(t, message.String("1"), req.Attribute("page"))
	assert.Equal(t, message.String("Ada"), req.Attribute("name"))
}

func TestServerRequestFactory_ListBodyAddsNoAttributes(t *testing.T) {
	req := message.NewServerRequestFactory().CreateServerRequest("POST", uri.URI{}, nil, message.Globals{
		Post: message.List{message.String("a")},
	})

	assert.Equal(t, message.List{message.String("a")}, req.ParsedBody())
	assert.Empty(t, req.Attributes())
}

func TestServerRequestFactory_EmptyGlobals(t *testing.T) {
	req := message.NewServerRequestFactory().CreateServerRequest("GET", uri.URI{}, nil, message.Globals{})

	assert.NotNil(t, req.QueryParams())
	assert.NotNil(t, req.CookieParams())
	assert.Nil(t, req.ParsedBody())
	assert.Empty(t, req.UploadedFiles())
	assert.Empty(t, req.Headers())
}

// ── Uploaded file factory ─────────────────────────────────────────────────────

func TestUploadedFileFactory_SizeFallback(t *testing.T) {
	f := message.NewUploadedFileFactory()
	s, err := stream.NewFactory().CreateStream("12345")
	require.NoError(t, err)

	for _, size := range []int64{0, -1} {
		got, ok := f.CreateUploadedFile(s, size, message.UploadOK, "", "").Size()
		assert.True(t, ok)
		assert.EqualValues(t, 5, got)
	}

	got, _ := f.CreateUploadedFile(s, 3, message.UploadOK, "", "").Size()
	assert.EqualValues(t, 3, got, "explicit size wins")

	_, ok := f.CreateUploadedFile(stream.New(nil), 0, message.UploadOK, "", "").Size()
	assert.False(t, ok)
}

func TestServerRequestFactory_HoldsNoRequestState(t *testing.T) {
	f := message.NewServerRequestFactory()

	first := f.CreateServerRequest("GET", uri.URI{}, nil, message.Globals{
		Query: message.Map{"page": message.String("1")},
	})
	second := f.CreateServerRequest("GET", uri.URI{}, nil, message.Globals{})

	assert.Equal(t, "1", first.QueryParams().String("page"))
	assert.Empty(t, second.QueryParams())
	assert.Empty(t, second.Attributes())
}
