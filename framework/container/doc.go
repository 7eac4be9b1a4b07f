// Package container provides the service container and service provider
// registry the message stack is assembled with.
//
// # Overview
//
// The container manages the construction and lifetime of factories, helpers
// and configuration. Go has no runtime constructor reflection, so every
// binding is an explicit factory function.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&providers.MessageServiceProvider{})
//  3. Boot: registry.Boot(), after which everything may be resolved
//  4. Serve requests
//
// # Bindings
//
//	// Transient: new instance every Make()
//	c.Bind("request-factory", func(c *container.Container) any {
//	    return message.NewRequestFactory()
//	})
//
//	// Singleton: created once, reused
//	c.Singleton(container.Key[stream.Factory](), func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    return &stream.DefaultFactory{Mode: cfg.Message.StreamMode}
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw := c.Make("config")
//	cfg := container.Resolve[*config.Config](c, "config")
//	streams := container.MakeFor[stream.Factory](c)
//
// # Deferred Providers
//
//	type ViewProvider struct{ container.BaseProvider }
//
//	func (p *ViewProvider) IsDeferred() bool   { return true }
//	func (p *ViewProvider) Provides() []string { return []string{"view"} }
//	func (p *ViewProvider) Register(app *container.Container) {
//	    app.Singleton("view", func(c *container.Container) any {
//	        return http.NewViewEngine("./views", ".html", nil, nil) // only on first app.Make("view")
//	    })
//	}
package container
