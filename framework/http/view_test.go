package http_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-message/framework/http"
	"github.com/km-arc/go-message/framework/message"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestViewEngine_View(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.html", `<h1>{{.Title}}</h1>`)

	views := gohttp.NewViewEngine(dir, ".html", nil, nil)
	res, err := views.View("home", map[string]any{"Title": "Tom & Jerry"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Equal(t, gohttp.ContentTypeHTML, res.HeaderLine("Content-Type"))
	assert.Equal(t, "<h1>Tom &amp; Jerry</h1>", res.Body().String())
}

func TestViewEngine_ViewWithLayout(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "layout.tmpl", `<main>{{template "content" .}}</main>`)
	writeTemplate(t, dir, "page.tmpl", `{{define "content"}}<p>{{.Body}}</p>{{end}}`)

	views := gohttp.NewViewEngine(dir, ".tmpl", nil, nil)
	res, err := views.ViewWithLayout("layout", "page", map[string]any{"Body": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "<main><p>hello</p></main>", res.Body().String())
}

func TestViewEngine_Errors(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "broken.html", `{{.Missing.Field}}`)

	views := gohttp.NewViewEngine(dir, ".html", nil, nil)

	_, err := views.View("absent", nil)
	assert.ErrorContains(t, err, "template not found")

	_, err = views.View("broken", map[string]any{"Missing": 1})
	assert.ErrorContains(t, err, "render error")
}

func TestViewEngine_UsesResponseFactory(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.html", `home`)

	views := gohttp.NewViewEngine(dir, ".html", &message.DefaultResponseFactory{ProtocolVersion: "2"}, nil)
	res, err := views.View("home", nil)
	require.NoError(t, err)
	assert.Equal(t, "2", res.ProtocolVersion())
}
