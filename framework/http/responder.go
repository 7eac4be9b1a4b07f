package http

import (
	"net/http"

	"github.com/km-arc/go-message/framework/message"
)

// Responder builds the common responses on top of a ResponseHelper. Every
// method returns a fresh *message.Response ready for Emit.
//
//	res, err := respond.Success(user)         // 200 {"data": user}
//	res, err := respond.NotFound()            // 404 {"message": "Not found."}
type Responder struct {
	helper    ResponseHelper
	responses message.ResponseFactory
}

// NewResponder wraps helper. Responses without a JSON body come from
// responses; nil uses message.NewResponseFactory().
func NewResponder(helper ResponseHelper, responses message.ResponseFactory) *Responder {
	if responses == nil {
		responses = message.NewResponseFactory()
	}
	return &Responder{helper: helper, responses: responses}
}

// Helper returns the wrapped ResponseHelper.
func (r *Responder) Helper() ResponseHelper { return r.helper }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON encodes data with the given status.
func (r *Responder) JSON(status int, data any) (*message.Response, error) {
	return r.helper.Create(status, data)
}

// Success returns 200: {"data": v}
func (r *Responder) Success(v any) (*message.Response, error) {
	return r.JSON(http.StatusOK, envelope{"data": v})
}

// Created returns 201: {"data": v}
func (r *Responder) Created(v any) (*message.Response, error) {
	return r.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent returns 204 with an empty body.
func (r *Responder) NoContent() *message.Response {
	return r.responses.CreateResponse(http.StatusNoContent, "")
}

// Error returns a JSON error response.
//
//	respond.Error(http.StatusConflict, "Already exists.")
func (r *Responder) Error(status int, msg string) (*message.Response, error) {
	return r.JSON(status, envelope{"message": msg})
}

// Unauthorized returns 401.
func (r *Responder) Unauthorized(msg ...string) (*message.Response, error) {
	return r.Error(http.StatusUnauthorized, first(msg, "Unauthenticated."))
}

// Forbidden returns 403.
func (r *Responder) Forbidden(msg ...string) (*message.Response, error) {
	return r.Error(http.StatusForbidden, first(msg, "This action is unauthorized."))
}

// NotFound returns 404.
func (r *Responder) NotFound(msg ...string) (*message.Response, error) {
	return r.Error(http.StatusNotFound, first(msg, "Not found."))
}

// ServerError returns 500.
func (r *Responder) ServerError(msg ...string) (*message.Response, error) {
	return r.Error(http.StatusInternalServerError, first(msg, "Server Error."))
}

// ── Redirects ────────────────────────────────────────────────────────────────

// Redirect returns a redirect to url with the given status.
//
//	respond.Redirect(http.StatusFound, "/dashboard")
func (r *Responder) Redirect(status int, url string) *message.Response {
	return r.responses.CreateResponse(status, "").
		WithHeader("Location", url)
}

// RedirectBack redirects to the request's Referer, or fallback without one.
func (r *Responder) RedirectBack(req *message.ServerRequest, fallback string) *message.Response {
	ref := req.HeaderLine("Referer")
	if ref == "" {
		ref = fallback
	}
	return r.Redirect(http.StatusFound, ref)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
