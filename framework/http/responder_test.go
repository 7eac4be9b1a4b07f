package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-message/framework/http"
	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

func newResponder() *gohttp.Responder {
	return gohttp.NewResponder(newJson(), nil)
}

func TestResponder_Envelopes(t *testing.T) {
	respond := newResponder()

	tests := []struct {
		name   string
		call   func() (*message.Response, error)
		status int
		body   string
	}{
		{"Success", func() (*message.Response, error) { return respond.Success("ok") }, http.StatusOK, `{"data":"ok"}`},
		{"Created", func() (*message.Response, error) { return respond.Created(1) }, http.StatusCreated, `{"data":1}`},
		{"Error", func() (*message.Response, error) { return respond.Error(http.StatusConflict, "taken") }, http.StatusConflict, `{"message":"taken"}`},
		{"Unauthorized", func() (*message.Response, error) { return respond.Unauthorized() }, http.StatusUnauthorized, `{"message":"Unauthenticated."}`},
		{"Forbidden", func() (*message.Response, error) { return respond.Forbidden() }, http.StatusForbidden, `{"message":"This action is unauthorized."}`},
		{"NotFound", func() (*message.Response, error) { return respond.NotFound() }, http.StatusNotFound, `{"message":"Not found."}`},
		{"NotFound custom", func() (*message.Response, error) { return respond.NotFound("No user.") }, http.StatusNotFound, `{"message":"No user."}`},
		{"ServerError", func() (*message.Response, error) { return respond.ServerError() }, http.StatusInternalServerError, `{"message":"Server Error."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode())
			assert.JSONEq(t, tt.body, res.Body().String())
			assert.Equal(t, gohttp.ContentTypeJSON, res.HeaderLine("Content-Type"))
		})
	}
}

func TestResponder_NoContent(t *testing.T) {
	res := newResponder().NoContent()
	assert.Equal(t, http.StatusNoContent, res.StatusCode())
	assert.Equal(t, "", res.Body().String())
}

func TestResponder_Redirect(t *testing.T) {
	respond := newResponder()

	res := respond.Redirect(http.StatusFound, "/dashboard")
	assert.Equal(t, http.StatusFound, res.StatusCode())
	assert.Equal(t, "/dashboard", res.HeaderLine("location"))

	req := message.NewServerRequest("GET", uri.URI{}, nil)
	assert.Equal(t, "/home", respond.RedirectBack(req, "/home").HeaderLine("Location"))

	req = req.WithHeader("Referer", "/previous")
	assert.Equal(t, "/previous", respond.RedirectBack(req, "/home").HeaderLine("Location"))
}

func TestResponder_UsesResponseFactory(t *testing.T) {
	responses := &message.DefaultResponseFactory{ProtocolVersion: "2"}
	respond := gohttp.NewResponder(gohttp.NewJson(responses, stream.NewFactory()), responses)

	assert.Equal(t, "2", respond.NoContent().ProtocolVersion())
	assert.Equal(t, "2", respond.Redirect(http.StatusSeeOther, "/").ProtocolVersion())

	res, err := respond.Success("ok")
	require.NoError(t, err)
	assert.Equal(t, "2", res.ProtocolVersion())
}
