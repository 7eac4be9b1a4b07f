package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the service container the message stack is wired through.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Resolve / TryResolve
//   - interface-typed keys via Key and TypeKey
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// abstract → resolved singleton instance
	instances map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string
}

// New creates an empty container bound to itself under "container".
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) factory.
//
//	c.Bind(container.Key[message.RequestFactory](), func(c *container.Container) any {
//	    return message.NewRequestFactory()
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton(container.Key[stream.Factory](), func(c *container.Container) any {
//	    return stream.NewFactory()
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// bind is the internal registration helper (must hold mu.Lock).
func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	key := c.canonical(abstract)
	// Drop a cached singleton so the new factory takes effect.
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
//
//	c.Alias(container.Key[http.ResponseHelper](), "response")
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container. It panics when nothing is
// registered under abstract.
func (c *Container) Make(abstract string) any {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", abstract))
	}
	return c.runFactory(key, b)
}

// runFactory executes a factory, caching the result for singletons. The
// factory runs without the lock held so it may resolve its own dependencies.
func (c *Container) runFactory(key string, b *binding) any {
	instance := b.factory(c)
	if !b.singleton {
		return instance
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have won the race; keep the first instance.
	if existing, ok := c.instances[key]; ok {
		return existing
	}
	c.instances[key] = instance
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract holds a cached instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Forget removes all registrations for an abstract (binding + instance).
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
}

// Bindings returns all registered abstract keys, sorted (for debugging).
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical key. Callers hold c.mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key when working with interfaces.
//
//	key := container.TypeKey((*message.ResponseFactory)(nil))
//	// "github.com/km-arc/go-message/framework/message.ResponseFactory"
func TypeKey(v any) string {
	return typeName(reflect.TypeOf(v))
}

// Key is TypeKey for a type parameter.
//
//	c.Singleton(container.Key[message.ResponseFactory](), factory)
//	f := container.Resolve[message.ResponseFactory](c, container.Key[message.ResponseFactory]())
func Key[T any]() string {
	return typeName(reflect.TypeOf((*T)(nil)).Elem())
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: f := c.Make(key).(message.ResponseFactory)
//	// Write:      f := container.Resolve[message.ResponseFactory](c, key)
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is like Resolve but reports false instead of panicking when
// the abstract is unbound or holds another type.
func TryResolve[T any](c *Container, abstract string) (T, bool) {
	var zero T
	if !c.Bound(abstract) {
		return zero, false
	}
	typed, ok := c.Make(abstract).(T)
	return typed, ok
}

// MakeFor resolves the binding registered under Key[T]().
//
//	helper := container.MakeFor[http.ResponseHelper](app.Container)
func MakeFor[T any](c *Container) T {
	return Resolve[T](c, Key[T]())
}
