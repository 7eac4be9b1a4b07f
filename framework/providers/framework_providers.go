package providers

import (
	"github.com/km-arc/go-message/framework/config"
	"github.com/km-arc/go-message/framework/container"
	gohttp "github.com/km-arc/go-message/framework/http"
	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/routing"
	"github.com/km-arc/go-message/framework/stream"
	"github.com/km-arc/go-message/framework/uri"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container.
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// configOf returns the bound configuration, or a zero Config whose empty
// fields make every factory fall back to its defaults.
func configOf(c *container.Container) *config.Config {
	if cfg, ok := container.TryResolve[*config.Config](c, "config"); ok {
		return cfg
	}
	return &config.Config{}
}

// ── MessageServiceProvider ────────────────────────────────────────────────────

// MessageServiceProvider registers the message factories and the JSON
// response helper, each keyed by its type with container.Key.
//
// Bound abstracts:
//   - uri.Factory                   → uri.Parser
//   - stream.Factory                → *stream.DefaultFactory (mode: message.stream_mode)
//   - message.RequestFactory        → *message.DefaultRequestFactory
//   - message.ResponseFactory       → *message.DefaultResponseFactory
//   - message.ServerRequestFactory  → *message.DefaultServerRequestFactory
//   - message.UploadedFileFactory   → *message.DefaultUploadedFileFactory
//   - *gohttp.Json                  → JSON helper over the two factories above
//   - gohttp.ResponseHelper         → the same *gohttp.Json
//   - *gohttp.Responder             → Responder over gohttp.ResponseHelper
//   - gohttp.CaptureOptions         → upload dir and memory limit from config,
//                                     plus the factories above
//
// Every factory stamps the configured protocol version on new messages.
type MessageServiceProvider struct {
	container.BaseProvider
}

func (p *MessageServiceProvider) Register(app *container.Container) {
	app.Singleton(container.Key[uri.Factory](), func(c *container.Container) any {
		return uri.Parser{}
	})
	app.Singleton(container.Key[stream.Factory](), func(c *container.Container) any {
		return &stream.DefaultFactory{Mode: configOf(c).Message.StreamMode}
	})
	app.Singleton(container.Key[message.RequestFactory](), func(c *container.Container) any {
		return &message.DefaultRequestFactory{
			URIs:            container.MakeFor[uri.Factory](c),
			ProtocolVersion: configOf(c).Message.ProtocolVersion,
		}
	})
	app.Singleton(container.Key[message.ResponseFactory](), func(c *container.Container) any {
		return &message.DefaultResponseFactory{ProtocolVersion: configOf(c).Message.ProtocolVersion}
	})
	app.Singleton(container.Key[message.ServerRequestFactory](), func(c *container.Container) any {
		return &message.DefaultServerRequestFactory{
			URIs:            container.MakeFor[uri.Factory](c),
			ProtocolVersion: configOf(c).Message.ProtocolVersion,
		}
	})
	app.Singleton(container.Key[message.UploadedFileFactory](), func(c *container.Container) any {
		return message.NewUploadedFileFactory()
	})

	app.Singleton(container.Key[*gohttp.Json](), func(c *container.Container) any {
		return gohttp.NewJson(
			container.MakeFor[message.ResponseFactory](c),
			container.MakeFor[stream.Factory](c),
		)
	})
	app.Singleton(container.Key[gohttp.ResponseHelper](), func(c *container.Container) any {
		return container.MakeFor[*gohttp.Json](c)
	})
	app.Singleton(container.Key[*gohttp.Responder](), func(c *container.Container) any {
		return gohttp.NewResponder(
			container.MakeFor[gohttp.ResponseHelper](c),
			container.MakeFor[message.ResponseFactory](c),
		)
	})

	app.Singleton(container.Key[gohttp.CaptureOptions](), func(c *container.Container) any {
		cfg := configOf(c).Message
		return gohttp.CaptureOptions{
			MaxMemory: cfg.MaxMemory,
			UploadDir: cfg.UploadDir,
			Streams:   container.MakeFor[stream.Factory](c),
			Uploads:   container.MakeFor[message.UploadedFileFactory](c),
			Requests:  container.MakeFor[message.ServerRequestFactory](c),
			URIs:      container.MakeFor[uri.Factory](c),
		}
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. It uses the Responder and
// CaptureOptions of MessageServiceProvider when that provider is registered.
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		respond, _ := container.TryResolve[*gohttp.Responder](c, container.Key[*gohttp.Responder]())
		capture, _ := container.TryResolve[gohttp.CaptureOptions](c, container.Key[gohttp.CaptureOptions]())
		return routing.New(respond, capture)
	})
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine.
//
// Bound abstracts:
//   - "view"   → *gohttp.ViewEngine
//
// Dir and Ext override the view.dir and view.ext configuration, which in
// turn default to "./views" and ".html".
type ViewServiceProvider struct {
	container.BaseProvider
	Dir string
	Ext string
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	app.Singleton("view", func(c *container.Container) any {
		cfg := configOf(c).View
		dir := first(p.Dir, cfg.Dir, "./views")
		ext := first(p.Ext, cfg.Ext, ".html")

		responses, _ := container.TryResolve[message.ResponseFactory](c, container.Key[message.ResponseFactory]())
		streams, _ := container.TryResolve[stream.Factory](c, container.Key[stream.Factory]())
		return gohttp.NewViewEngine(dir, ext, responses, streams)
	})
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
