package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the bindings of one part of the stack.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type UploadProvider struct{ container.BaseProvider }
//
//	func (p *UploadProvider) Register(app *container.Container) {
//	    app.Singleton(container.Key[message.UploadedFileFactory](), func(c *container.Container) any {
//	        return message.NewUploadedFileFactory()
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(app *Container)

	// Provides returns the abstract keys this provider registers.
	// Only consulted for deferred providers.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily,
	// when one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[ServiceProvider]bool // deferred and not yet loaded
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[ServiceProvider]bool),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
// Registering the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.deferred[provider] = true
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred binds a placeholder for each deferred abstract. The
// first Make() of any of them registers (and, once booted, boots) the
// provider, whose own bindings replace the placeholders.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, abstract := range provider.Provides() {
		abs := abstract
		r.app.Bind(abs, func(c *Container) any {
			r.load(provider)
			if !c.Bound(abs) {
				panic(fmt.Sprintf("container: deferred provider %T did not register [%s]", provider, abs))
			}
			return c.Make(abs)
		})
	}
}

func (r *ProviderRegistry) load(provider ServiceProvider) {
	if !r.deferred[provider] {
		return
	}
	delete(r.deferred, provider)
	for _, abs := range provider.Provides() {
		r.app.Forget(abs)
	}
	provider.Register(r.app)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
