// Package http bridges net/http and the immutable message values.
//
// # Capture and Emit
//
//	func serve(w http.ResponseWriter, r *http.Request) {
//	    req, err := gohttp.Capture(r, gohttp.CaptureOptions{UploadDir: "/var/spool/uploads"})
//	    if err != nil { ... }
//	    defer gohttp.Cleanup(req)
//
//	    res, _ := json.Create(200, map[string]any{"path": req.URI().Path()})
//	    _ = gohttp.Emit(w, res)
//	}
//
// # Request helpers
//
//	var payload struct {
//	    Name string `json:"name"`
//	}
//	err := gohttp.Bind(req, &payload)   // JSON, url-encoded or multipart body
//
//	name  := gohttp.Input(req, "name", "default")
//	page  := gohttp.Query(req, "page", "1")
//	id    := gohttp.RouteParam(req, "id")
//	token := gohttp.BearerToken(req)
//
// # Responses
//
// Json is the ResponseHelper; Responder adds the usual envelopes on top.
//
//	responses := message.NewResponseFactory()
//	respond := gohttp.NewResponder(gohttp.NewJson(responses, stream.NewFactory()), responses)
//
//	respond.Success(data)          // 200 {"data": ...}
//	respond.Created(data)          // 201 {"data": ...}
//	respond.NoContent()            // 204
//	respond.NotFound()             // 404 {"message": "Not found."}
//	respond.Redirect(302, "/home")
//
// # Views
//
//	views := gohttp.NewViewEngine("./views", ".html", nil, nil)
//	res, err := views.View("home", map[string]any{"Title": "Home"})
package http
