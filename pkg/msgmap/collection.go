package msgmap

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/msgmap/pkg/msgmap/observability"
	"github.com/randalmurphal/msgmap/pkg/msgmap/registry"
)

// Collection hosts many templates addressed by key, built lazily from a
// Definition. Each key is built at most once; later lookups return the same
// *Template.
//
// A Collection is safe for concurrent use.
type Collection struct {
	id         string
	definition Definition
	keys       []string

	templates *registry.Registry[string, *Template]
	patterns  *gocache.Cache

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// NewCollection creates a Collection for def. The definition is copied, so
// later changes to def do not affect the Collection. Items are not checked
// until they are first requested.
func NewCollection(def Definition, opts ...CollectionOption) *Collection {
	cfg := defaultCollectionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = fmt.Sprintf("coll-%s", uuid.New().String()[:8])
	}

	copied := make(Definition, len(def))
	keys := make([]string, 0, len(def))
	for k, item := range def {
		copied[k] = item
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Collection{
		id:         cfg.id,
		definition: copied,
		keys:       keys,
		templates:  registry.New[string, *Template](),
		patterns:   gocache.New(gocache.NoExpiration, 0),
		logger:     observability.EnrichLogger(cfg.logger, cfg.id),
		metrics:    cfg.metrics,
		spans:      cfg.spans,
	}
}

// ID returns the collection ID used in logs and spans.
func (c *Collection) ID() string { return c.id }

// Keys returns the definition's keys in sorted order.
func (c *Collection) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Has reports whether key is part of the definition.
func (c *Collection) Has(key string) bool {
	_, ok := c.definition[key]
	return ok
}

// Len returns the number of keys in the definition.
func (c *Collection) Len() int { return len(c.keys) }

// Built returns the number of templates constructed so far.
func (c *Collection) Built() int { return c.templates.Len() }

// Get returns the template for key, building it on first access.
//
// Unknown keys return a *LookupError. Items whose substitution configs cannot
// be built return a *ConfigError; such failures are not cached.
func (c *Collection) Get(key string) (*Template, error) {
	return c.get(context.Background(), key)
}

// MustGet is like Get but panics on error.
func (c *Collection) MustGet(key string) *Template {
	tpl, err := c.Get(key)
	if err != nil {
		panic(fmt.Sprintf("msgmap: %v", err))
	}
	return tpl
}

// Render renders the template for key with values.
//
// Example:
//
//	s, err := coll.Render(ctx, "HELLO", msgmap.Values{"two": "bar"})
func (c *Collection) Render(ctx context.Context, key string, values Values) (result string, err error) {
	start := time.Now()

	ctx, span := c.spans.StartRenderSpan(ctx, c.id, key)
	defer func() {
		c.spans.EndSpanWithError(span, err)
		c.metrics.RecordRender(ctx, key, time.Since(start), err)
		if err != nil {
			observability.LogRenderError(c.logger, key, err)
		} else {
			observability.LogRender(c.logger, key, float64(time.Since(start).Microseconds())/1000)
		}
	}()

	tpl, err := c.get(ctx, key)
	if err != nil {
		return "", err
	}
	return tpl.Render(values)
}

// get returns the cached template for key or builds it.
func (c *Collection) get(ctx context.Context, key string) (*Template, error) {
	if tpl, ok := c.templates.Get(key); ok {
		c.spans.AddSpanEvent(ctx, "template.cache", attribute.Bool("hit", true))
		return tpl, nil
	}

	item, ok := c.definition[key]
	if !ok {
		return nil, &LookupError{Key: key}
	}
	c.spans.AddSpanEvent(ctx, "template.cache", attribute.Bool("hit", false))

	return c.templates.GetOrCreate(key, func() (*Template, error) {
		ctx, span := c.spans.StartBuildSpan(ctx, key)
		tpl, err := c.build(key, item)
		c.spans.EndSpanWithError(span, err)

		if err != nil {
			c.metrics.RecordBuild(ctx, key, 0, err)
			observability.LogBuildError(c.logger, key, err)
			return nil, err
		}
		c.metrics.RecordBuild(ctx, key, len(tpl.bindings), nil)
		observability.LogBuild(c.logger, key, len(tpl.bindings))
		return tpl, nil
	})
}

// build constructs the template for one item. Required tokens are registered
// before optional ones, each group in name order.
func (c *Collection) build(key string, item Item) (*Template, error) {
	tpl := New(item.Base)

	for _, name := range sortedNames(item.Required) {
		v, err := newValidator(item.Required[name], true, c.compile)
		if err != nil {
			return nil, &ConfigError{Key: key, Token: name, Err: err}
		}
		tpl = tpl.RequiredWith(name, v)
	}

	for _, name := range sortedNames(item.Optional) {
		v, err := newValidator(item.Optional[name], false, c.compile)
		if err != nil {
			return nil, &ConfigError{Key: key, Token: name, Err: err}
		}
		tpl = tpl.OptionalWith(name, v)
	}

	return tpl, nil
}

// compile compiles a case-insensitive pattern, reusing earlier compilations
// within this collection.
func (c *Collection) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := c.patterns.Get(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := compileFold(pattern)
	if err != nil {
		return nil, err
	}
	c.patterns.Set(pattern, re, gocache.NoExpiration)
	return re, nil
}

func sortedNames(m map[string]*Substitution) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
