package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
)

// ContentTypeHTML is the media type set by ViewEngine.
const ContentTypeHTML = "text/html; charset=utf-8"

// ViewEngine renders template files into HTML responses.
type ViewEngine struct {
	dir       string
	ext       string
	responses message.ResponseFactory
	streams   stream.Factory
}

// NewViewEngine creates a ViewEngine.
// dir is the templates directory (e.g. "./views"), ext is the file extension
// (e.g. ".html"). Nil factories fall back to message.NewResponseFactory()
// and stream.NewFactory().
func NewViewEngine(dir, ext string, responses message.ResponseFactory, streams stream.Factory) *ViewEngine {
	if responses == nil {
		responses = message.NewResponseFactory()
	}
	if streams == nil {
		streams = stream.NewFactory()
	}
	return &ViewEngine{dir: dir, ext: ext, responses: responses, streams: streams}
}

// View renders a template file with data into a 200 response.
//
//	res, err := views.View("home", map[string]any{"title": "Home"})
func (ve *ViewEngine) View(name string, data any) (*message.Response, error) {
	tmpl, err := template.ParseFiles(ve.path(name))
	if err != nil {
		return nil, fmt.Errorf("template not found: %s: %w", name, err)
	}
	return ve.render(tmpl, "", data)
}

// ViewWithLayout renders a template inside a base layout. The layout is
// executed and is expected to pull in the view's blocks.
func (ve *ViewEngine) ViewWithLayout(layout, name string, data any) (*message.Response, error) {
	layoutPath := ve.path(layout)
	tmpl, err := template.ParseFiles(layoutPath, ve.path(name))
	if err != nil {
		return nil, fmt.Errorf("template error: %w", err)
	}
	return ve.render(tmpl, filepath.Base(layoutPath), data)
}

func (ve *ViewEngine) path(name string) string {
	return filepath.Join(ve.dir, name+ve.ext)
}

func (ve *ViewEngine) render(tmpl *template.Template, name string, data any) (*message.Response, error) {
	var buf bytes.Buffer
	var err error
	if name == "" {
		err = tmpl.Execute(&buf, data)
	} else {
		err = tmpl.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		return nil, fmt.Errorf("render error: %w", err)
	}

	body, err := ve.streams.CreateStream(buf.String())
	if err != nil {
		return nil, err
	}
	return ve.responses.CreateResponse(http.StatusOK, "").
		WithHeader("Content-Type", ContentTypeHTML).
		WithBody(body), nil
}
