package articles

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const snapshotKey = "articles"

// CacheOption customises a CachedSource.
type CacheOption func(*CachedSource)

// WithCacheTTL expires the snapshot after ttl. Zero keeps it until invalidated.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *CachedSource) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger used by the cache and its watcher.
func WithCacheLogger(logger interfaces.Logger) CacheOption {
	return func(c *CachedSource) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCacheClock overrides the clock used for TTL checks.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *CachedSource) {
		if now != nil {
			c.now = now
		}
	}
}

// CachedSource memoises the article list of another Source. The published
// snapshot is never mutated; callers receive their own copy of the slice.
// Concurrent misses share a single reload.
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	logger interfaces.Logger
	group  singleflight.Group

	mu         sync.RWMutex
	snapshot   []*Article
	loadedAt   time.Time
	generation uint64

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewCachedSource wraps source with a snapshot cache.
func NewCachedSource(source Source, opts ...CacheOption) *CachedSource {
	c := &CachedSource{
		source: source,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Load serves the snapshot, reloading it when absent or expired. The shared
// reload ignores cancellation of whichever caller started it; each caller
// stops waiting when its own ctx is done.
func (c *CachedSource) Load(ctx context.Context) ([]*Article, error) {
	if records, ok := c.fresh(); ok {
		return records, nil
	}

	reload := context.WithoutCancel(ctx)
	flight := c.group.DoChan(snapshotKey, func() (any, error) {
		return c.reload(reload)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyArticles(res.Val.([]*Article)), nil
	}
}

func (c *CachedSource) reload(ctx context.Context) ([]*Article, error) {
	if records, ok := c.fresh(); ok {
		return records, nil
	}

	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	records, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*Article{}
	}

	c.mu.Lock()
	if c.generation == generation {
		c.snapshot = records
		c.loadedAt = c.now()
	}
	c.mu.Unlock()

	c.logger.Debug("articles.cache.reloaded", "count", len(records))
	return records, nil
}

// Invalidate drops the snapshot. A reload already in flight is not published.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.loadedAt = time.Time{}
	c.generation++
	c.mu.Unlock()
	c.logger.Debug("articles.cache.invalidated")
}

// Watch invalidates the snapshot whenever a file accepted by match is created,
// written, removed or renamed inside dir.
func (c *CachedSource) Watch(dir string, match func(name string) bool) error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	if c.watcher != nil {
		return fmt.Errorf("articles: cache already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("articles: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("articles: watch %s: %w", dir, err)
	}

	c.watcher = watcher
	c.done = make(chan struct{})
	c.wg.Add(1)
	go c.watch(watcher, c.done, match)

	c.logger.Info("articles.cache.watching", "dir", dir)
	return nil
}

// Close stops the watcher, if any.
func (c *CachedSource) Close() error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	if c.watcher == nil {
		return nil
	}
	close(c.done)
	err := c.watcher.Close()
	c.wg.Wait()
	c.watcher = nil
	return err
}

func (c *CachedSource) watch(watcher *fsnotify.Watcher, done <-chan struct{}, match func(string) bool) {
	defer c.wg.Done()

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&relevant == 0 {
				continue
			}
			if match != nil && !match(filepath.Base(event.Name)) {
				continue
			}
			c.logger.Debug("articles.cache.change", "file", event.Name, "op", event.Op.String())
			c.Invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("articles.cache.watch_error", "error", err)
		}
	}
}

func (c *CachedSource) fresh() ([]*Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(c.loadedAt) >= c.ttl {
		return nil, false
	}
	return copyArticles(c.snapshot), true
}

func copyArticles(records []*Article) []*Article {
	out := make([]*Article, len(records))
	copy(out, records)
	return out
}
