package container_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-message/framework/container"
	"github.com/km-arc/go-message/framework/message"
	"github.com/km-arc/go-message/framework/stream"
)

// ── Bind / Singleton / Instance ───────────────────────────────────────────────

func TestContainer_BindIsTransient(t *testing.T) {
	c := container.New()
	c.Bind("request-factory", func(*container.Container) any { return message.NewRequestFactory() })

	a := c.Make("request-factory")
	b := c.Make("request-factory")
	assert.NotSame(t, a, b)
	assert.False(t, c.Resolved("request-factory"))
}

func TestContainer_SingletonIsCached(t *testing.T) {
	c := container.New()
	calls := 0
	c.Singleton("streams", func(*container.Container) any {
		calls++
		return stream.NewFactory()
	})

	assert.False(t, c.Resolved("streams"))
	a := c.Make("streams")
	b := c.Make("streams")
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
	assert.True(t, c.Resolved("streams"))
}

func TestContainer_RebindDropsCachedSingleton(t *testing.T) {
	c := container.New()
	c.Singleton("mode", func(*container.Container) any { return "rb" })
	assert.Equal(t, "rb", c.Make("mode"))

	c.Singleton("mode", func(*container.Container) any { return "rb+" })
	assert.Equal(t, "rb+", c.Make("mode"))
}

func TestContainer_Instance(t *testing.T) {
	c := container.New()
	f := message.NewResponseFactory()
	c.Instance("responses", f)

	assert.Same(t, f, c.Make("responses"))
	assert.True(t, c.Bound("responses"))
	assert.Same(t, c, c.Make("container"), "the container is bound to itself")
}

func TestContainer_SingletonConcurrentMake(t *testing.T) {
	c := container.New()
	c.Singleton("streams", func(*container.Container) any { return stream.NewFactory() })

	var wg sync.WaitGroup
	results := make([]any, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Make("streams")
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

// ── Alias / Forget / Bindings ─────────────────────────────────────────────────

func TestContainer_Alias(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	assert.Equal(t, "cfg", c.Make("configuration"))
	assert.True(t, c.Bound("configuration"))
	assert.Panics(t, func() { c.Alias("x", "x") })
}

func TestContainer_AliasWhileResolving(t *testing.T) {
	c := container.New()
	c.Instance("streams", stream.NewFactory())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Alias("streams", fmt.Sprintf("streams-%d", i))
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, c.Make("streams"))
		}()
	}
	wg.Wait()

	assert.Same(t, c.Make("streams"), c.Make("streams-49"))
}

func TestContainer_Forget(t *testing.T) {
	c := container.New()
	c.Singleton("streams", func(*container.Container) any { return stream.NewFactory() })
	_ = c.Make("streams")

	c.Forget("streams")
	assert.False(t, c.Bound("streams"))
	assert.Panics(t, func() { c.Make("streams") })
}

func TestContainer_Bindings(t *testing.T) {
	c := container.New()
	c.Bind("b", func(*container.Container) any { return 1 })
	c.Instance("a", 2)

	assert.Equal(t, []string{"a", "b", "container"}, c.Bindings())
}

// ── Keys and generic resolution ───────────────────────────────────────────────

func TestTypeKey(t *testing.T) {
	want := "github.com/km-arc/go-message/framework/message.ResponseFactory"
	assert.Equal(t, want, container.TypeKey((*message.ResponseFactory)(nil)))
	assert.Equal(t, want, container.Key[message.ResponseFactory]())

	assert.Equal(t, "github.com/km-arc/go-message/framework/message.Response", container.Key[*message.Response]())
	assert.Equal(t, container.TypeKey(&message.Response{}), container.Key[message.Response]())
}

func TestResolve(t *testing.T) {
	c := container.New()
	c.Singleton(container.Key[message.ResponseFactory](), func(*container.Container) any {
		return message.NewResponseFactory()
	})

	f := container.Resolve[message.ResponseFactory](c, container.Key[message.ResponseFactory]())
	assert.Equal(t, 201, f.CreateResponse(201, "").StatusCode())
	assert.Same(t, f, container.MakeFor[message.ResponseFactory](c))

	assert.Panics(t, func() { container.Resolve[stream.Factory](c, container.Key[message.ResponseFactory]()) })
	assert.Panics(t, func() { container.MakeFor[message.RequestFactory](c) })
}

func TestTryResolve(t *testing.T) {
	c := container.New()
	c.Instance("mode", "rb")

	got, ok := container.TryResolve[string](c, "mode")
	assert.True(t, ok)
	assert.Equal(t, "rb", got)

	_, ok = container.TryResolve[int](c, "mode")
	assert.False(t, ok)

	_, ok = container.TryResolve[string](c, "missing")
	assert.False(t, ok)
}
