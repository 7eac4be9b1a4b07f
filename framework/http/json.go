package http

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
)

// ContentTypeJSON is the media type set by Json.
const ContentTypeJSON = "application/json"

// ResponseHelper builds a complete response from a status code and a payload.
type ResponseHelper interface {
	Create(code int, payload any) (*message.Response, error)
}

// Json is the ResponseHelper that encodes payloads as JSON.
//
//	helper := http.NewJson(message.NewResponseFactory(), stream.NewFactory())
//	res, err := helper.Create(200, map[string]any{"test": 1})
//	res.Body().String()             // `{"test":1}`
//	res.HeaderLine("Content-Type")  // "application/json"
type Json struct {
	responses message.ResponseFactory
	streams   stream.Factory
}

// NewJson returns a Json helper building on the given factories.
func NewJson(responses message.ResponseFactory, streams stream.Factory) *Json {
	return &Json{responses: responses, streams: streams}
}

// Create encodes payload and returns it as the body of a code response with
// Content-Type application/json added. A nil payload encodes as "". Values
// the encoder rejects (channels, funcs, cyclic data) yield an error.
func (j *Json) Create(code int, payload any) (*message.Response, error) {
	if payload == nil {
		payload = ""
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode json response: %w", err)
	}
	body, err := j.streams.CreateStream(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("encode json response: %w", err)
	}
	return j.responses.CreateResponse(code, "").
		WithAddedHeader("Content-Type", ContentTypeJSON).
		WithBody(body), nil
}
