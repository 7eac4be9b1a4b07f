// Package message provides immutable HTTP message values: Message, Request,
// ServerRequest, Response and UploadedFile, plus the factories that build
// them.
//
// Every With* method returns a fresh value of the receiver's own type:
//
//	req := message.NewRequest("GET", uri.MustParse("https://example.com/users")).
//	    WithHeader("Accept", "application/json").
//	    WithAddedHeader("Accept", "text/html")
//
//	req.Method()             // "get"
//	req.HeaderLine("accept") // "application/json,text/html"
//
// # Headers
//
// Names are matched case-insensitively and stored under the spelling they
// were last written with. HeaderNames reports them in insertion order; a
// header that is replaced moves to the end.
//
// # Factories
//
// The Default*Factory types fill in what a bare constructor leaves empty:
// the request target, headers taken from HTTP_* server params, and query,
// cookie, body and upload data taken from Globals.
//
//	f := message.NewServerRequestFactory()
//	req, _ := f.CreateServerRequestFromString("GET", "/users?page=2", map[string]string{
//	    "HTTP_USER_AGENT": "curl/8.0",
//	}, message.Globals{
//	    Query: message.Map{"page": message.String("2")},
//	})
//
//	req.RequestTarget()          // "/users"
//	req.HeaderLine("User-Agent") // "curl/8.0"
//	req.Attribute("page")        // message.String("2")
package message
