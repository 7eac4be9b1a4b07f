package routing

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gohttp "github.com/km-arc/go-message/framework/http"
	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
)

// Handler handles one captured request and returns the response to emit.
type Handler func(req *message.ServerRequest) (*message.Response, error)

// Router wraps chi.Router so routes are written against message values.
//
// Every request is captured into a *message.ServerRequest, passed to the
// handler, and the returned *message.Response is emitted. Uploads that the
// handler did not move are cleaned up afterwards.
type Router struct {
	mux     chi.Router
	respond *gohttp.Responder
	capture gohttp.CaptureOptions
}

// New creates a Router with the Logger, Recoverer and RealIP middleware.
// A nil respond uses a JSON Responder over the default factories.
func New(respond *gohttp.Responder, capture gohttp.CaptureOptions) *Router {
	if respond == nil {
		responses := message.NewResponseFactory()
		respond = gohttp.NewResponder(gohttp.NewJson(responses, stream.NewFactory()), responses)
	}
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	return &Router{mux: r, respond: respond, capture: capture}
}

func (r *Router) with(mx chi.Router) *Router {
	return &Router{mux: mx, respond: r.respond, capture: r.capture}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h Handler)    { r.mux.Get(pattern, r.wrap(h)) }
func (r *Router) Post(pattern string, h Handler)   { r.mux.Post(pattern, r.wrap(h)) }
func (r *Router) Put(pattern string, h Handler)    { r.mux.Put(pattern, r.wrap(h)) }
func (r *Router) Patch(pattern string, h Handler)  { r.mux.Patch(pattern, r.wrap(h)) }
func (r *Router) Delete(pattern string, h Handler) { r.mux.Delete(pattern, r.wrap(h)) }

// Any registers a handler for all common HTTP methods.
func (r *Router) Any(pattern string, h Handler) {
	hf := r.wrap(h)
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"} {
		r.mux.Method(m, pattern, hf)
	}
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group sharing the parent's prefix.
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(r.with(mx))
	})
}

// Prefix creates a sub-router mounted under pattern.
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(r.with(mx))
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more net/http middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Resource routes ──────────────────────────────────────────────────────────

// ResourceController handles the RESTful routes registered by Resource.
type ResourceController interface {
	Index(req *message.ServerRequest) (*message.Response, error)
	Store(req *message.ServerRequest) (*message.Response, error)
	Show(req *message.ServerRequest) (*message.Response, error)
	Update(req *message.ServerRequest) (*message.Response, error)
	Destroy(req *message.ServerRequest) (*message.Response, error)
}

// Resource registers the standard routes for c. The id is available as the
// "id" attribute.
//
//	GET    /photos           → c.Index
//	POST   /photos           → c.Store
//	GET    /photos/{id}      → c.Show
//	PUT    /photos/{id}      → c.Update
//	PATCH  /photos/{id}      → c.Update
//	DELETE /photos/{id}      → c.Destroy
func (r *Router) Resource(pattern string, c ResourceController) {
	r.Get(pattern, c.Index)
	r.Post(pattern, c.Store)
	r.Get(pattern+"/{id}", c.Show)
	r.Put(pattern+"/{id}", c.Update)
	r.Patch(pattern+"/{id}", c.Update)
	r.Delete(pattern+"/{id}", c.Destroy)
}

// ── Static files ─────────────────────────────────────────────────────────────

// Static serves a directory at the given prefix.
// e.g. router.Static("/public", "./public")
func (r *Router) Static(prefix, dir string) {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.mux.Get(prefix+"/*", fs.ServeHTTP)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}

// wrap adapts h to net/http. A request that cannot be captured gets a 400,
// a handler error or a nil response a 500.
func (r *Router) wrap(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, hr *http.Request) {
		req, err := gohttp.Capture(hr, r.capture)
		if err != nil {
			r.emit(w, hr, r.failure(http.StatusBadRequest, "Bad request."))
			return
		}
		defer gohttp.Cleanup(req)

		res, err := h(req)
		switch {
		case err != nil:
			log.Printf("%s %s: %v", hr.Method, hr.URL.Path, err)
			res = r.failure(http.StatusInternalServerError, "Server Error.")
		case res == nil:
			res = r.failure(http.StatusInternalServerError, "Server Error.")
		}
		r.emit(w, hr, res)
	}
}

func (r *Router) failure(status int, msg string) *message.Response {
	res, err := r.respond.Error(status, msg)
	if err != nil {
		return message.NewResponse().WithStatus(status)
	}
	return res
}

func (r *Router) emit(w http.ResponseWriter, hr *http.Request, res *message.Response) {
	if err := gohttp.Emit(w, res); err != nil {
		log.Printf("%s %s: emit response: %v", hr.Method, hr.URL.Path, err)
	}
}
