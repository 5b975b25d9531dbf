package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"ignite-shop/internal/cache"
	"ignite-shop/internal/models"
)

// DefaultRevalidate is the revalidation window of product pages.
const DefaultRevalidate = time.Hour

// Resolver resolves a product id into its view-model.
type Resolver interface {
	Resolve(ctx context.Context, id string) (models.Product, error)
}

// Result is what Page returns: either a generated page or the signal to
// serve the fallback while generation runs.
type Result struct {
	Page     *cache.Page
	Fallback bool
	Stale    bool
}

type Options struct {
	Revalidate time.Duration
	// Timeout bounds one generation pass; zero leaves it unbounded.
	Timeout time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

// Generator produces product pages on demand and keeps them in a Store,
// regenerating each at most once per revalidation window.
type Generator struct {
	resolver Resolver
	store    cache.Store
	window   time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewGenerator(resolver Resolver, store cache.Store, opts Options) *Generator {
	if opts.Revalidate <= 0 {
		opts.Revalidate = DefaultRevalidate
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		resolver: resolver,
		store:    store,
		window:   opts.Revalidate,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// Revalidate returns the revalidation window.
func (g *Generator) Revalidate() time.Duration {
	return g.window
}

// Page returns the cached page for id. A stale page is returned as is and
// regenerated in the background. An unknown id yields a fallback result and
// starts its first generation.
func (g *Generator) Page(ctx context.Context, id string) (Result, error) {
	page, ok, err := g.store.Get(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("page store: %w", err)
	}
	if !ok {
		g.generateAsync(id)
		return Result{Fallback: true}, nil
	}
	if g.isStale(page) {
		g.generateAsync(id)
		return Result{Page: page, Stale: true}, nil
	}
	return Result{Page: page}, nil
}

// Data returns the page for id, generating it if there is none yet. It
// joins a generation already in flight for the same id.
func (g *Generator) Data(ctx context.Context, id string) (*cache.Page, error) {
	page, ok, err := g.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("page store: %w", err)
	}
	if ok {
		if g.isStale(page) {
			g.generateAsync(id)
		}
		return page, nil
	}
	return g.generate(ctx, id, false)
}

// Regenerate rebuilds the page for id now, regardless of its age.
func (g *Generator) Regenerate(ctx context.Context, id string) (*cache.Page, error) {
	return g.generate(ctx, id, true)
}

// Close stops background regeneration and waits for passes in flight.
func (g *Generator) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.wg.Wait()
}

func (g *Generator) isStale(p *cache.Page) bool {
	return g.now().Sub(p.GeneratedAt) >= g.window
}

func (g *Generator) generateAsync(id string) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		if _, err := g.generate(context.Background(), id, false); err != nil {
			g.logger.Warn("page regeneration failed",
				slog.String("product_id", id),
				slog.Any("err", err),
			)
		}
	}()
}

func (g *Generator) generate(ctx context.Context, id string, force bool) (*cache.Page, error) {
	key := id
	if force {
		key = "force:" + id
	}

	// The pass outlives any single caller; it is shared by everyone waiting
	// on the same id.
	ctx = context.WithoutCancel(ctx)

	v, err, _ := g.group.Do(key, func() (any, error) {
		if !force {
			if page, ok, err := g.store.Get(ctx, id); err == nil && ok && !g.isStale(page) {
				return page, nil
			}
		}
		return g.build(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*cache.Page), nil
}

func (g *Generator) build(ctx context.Context, id string) (*cache.Page, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := g.now()
	product, err := g.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	props, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("encode props %s: %w", id, err)
	}
	html, err := RenderProduct(product)
	if err != nil {
		return nil, err
	}

	page := &cache.Page{
		Key:         id,
		Props:       props,
		HTML:        html,
		ETag:        ETag(html),
		GeneratedAt: g.now(),
	}
	if err := g.store.Put(ctx, page); err != nil {
		return nil, fmt.Errorf("store page %s: %w", id, err)
	}

	g.logger.Info("page generated",
		slog.String("product_id", id),
		slog.Duration("took", g.now().Sub(start)),
	)
	return page, nil
}

// ETag is the strong entity tag of a rendered page.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}
