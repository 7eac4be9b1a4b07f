package main

import (
	"net/http"
	"path/filepath"

	"github.com/km-arc/go-message/framework/app"
	gohttp "github.com/km-arc/go-message/framework/http"
	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/routing"
)

func main() {
	application := app.New() // loads .env automatically
	application.Boot()

	r := application.Router()
	respond := application.Respond()
	uploadDir := application.Config().Message.UploadDir

	// ── Basic routes ─────────────────────────────────────────────────────────

	r.Get("/", func(req *message.ServerRequest) (*message.Response, error) {
		return respond.Success(map[string]any{"message": "Welcome to Go-Message!"})
	})

	r.Get("/hello/{name}", func(req *message.ServerRequest) (*message.Response, error) {
		return application.Views().View("hello", map[string]any{"Name": gohttp.RouteParam(req, "name")})
	})

	// ── API ──────────────────────────────────────────────────────────────────

	r.Prefix("/api/v1", func(api *routing.Router) {

		// GET /api/v1/echo?x=1 echoes the request back as seen by handlers.
		api.Any("/echo", func(req *message.ServerRequest) (*message.Response, error) {
			return respond.Success(map[string]any{
				"method":   req.Method(),
				"uri":      req.URI().String(),
				"protocol": req.ProtocolVersion(),
				"headers":  req.Headers(),
				"query":    req.QueryParams().Native(),
				"body":     message.Native(req.ParsedBody()),
			})
		})

		// POST /api/v1/users
		api.Post("/users", func(req *message.ServerRequest) (*message.Response, error) {
			var body struct {
				Name  string `json:"name"`
				Email string `json:"email"`
				Age   int    `json:"age"`
			}
			if err := gohttp.Bind(req, &body); err != nil {
				return respond.Error(http.StatusBadRequest, err.Error())
			}
			if body.Name == "" || body.Email == "" {
				return respond.Error(http.StatusUnprocessableEntity, "name and email are required")
			}
			return respond.Created(body)
		})

		// POST /api/v1/uploads (multipart/form-data)
		api.Post("/uploads", func(req *message.ServerRequest) (*message.Response, error) {
			var stored []map[string]any
			for _, f := range req.UploadedFiles() {
				if f.Error() != message.UploadOK {
					return respond.Error(http.StatusBadRequest, "upload failed: "+f.ClientFilename())
				}
				size, _ := f.Size()
				target := filepath.Join(uploadDir, filepath.Base(f.ClientFilename()))
				if err := f.MoveTo(target); err != nil {
					return nil, err
				}
				stored = append(stored, map[string]any{"name": f.ClientFilename(), "size": size})
			}
			return respond.Created(stored)
		})

		// GET /api/v1/users/{id}
		api.Get("/users/{id}", func(req *message.ServerRequest) (*message.Response, error) {
			return respond.Success(map[string]any{"id": gohttp.RouteParam(req, "id")})
		})
	})

	// ── Auth group with middleware ─────────────────────────────────────────────

	r.Group(func(protected *routing.Router) {
		protected.Middleware(AuthMiddleware)

		protected.Get("/profile", func(req *message.ServerRequest) (*message.Response, error) {
			return respond.Success(map[string]any{"user": "authenticated"})
		})
	})

	application.Run()
}

// AuthMiddleware is an example token guard.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.Header.Get("Authorization")) <= len("Bearer ") {
			w.Header().Set("Content-Type", gohttp.ContentTypeJSON)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
