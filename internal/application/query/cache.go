package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pharmaudit/dashboard/internal/infrastructure/metrics"
)

// State of one cached query.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// entry is one cached result. fetchedAt + ttl define the freshness window;
// generation guards against a late fetch resurrecting data for a key that was
// invalidated while the fetch was in flight (last request wins).
type entry struct {
	data       any
	err        error
	state      State
	fetchedAt  time.Time
	ttl        time.Duration
	generation uint64
}

type subscriber struct {
	prefix string
	ch     chan string
}

// Cache is the process-wide keyed TTL cache for upstream reads. Reads within
// the freshness window return cached data without an upstream call; stale or
// missing entries are fetched through singleflight so concurrent readers of
// the same key share one call. Mutation paths call Invalidate/InvalidatePrefix,
// which removes entries (not merely marks them), forcing a re-fetch next read.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	group   singleflight.Group
	subs    []*subscriber
	metrics *metrics.Metrics
	now     func() time.Time
}

// New builds an empty cache; m may be nil.
func New(m *metrics.Metrics) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		metrics: m,
		now:     time.Now,
	}
}

// GetOrFetch returns fresh cached data for key when available, otherwise runs
// fetch (deduplicated per key) and caches the result for ttl. An errored
// entry does not count as fresh: the next read retries. The result of a fetch
// started before an invalidation of the same key is returned to its callers
// but never stored.
func (c *Cache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.state == StateSuccess && c.now().Sub(e.fetchedAt) < e.ttl {
		data := e.data
		c.mu.Unlock()
		c.metrics.CacheHit()
		return data, nil
	}
	gen := c.gens[key]
	c.entries[key] = &entry{state: StateLoading, ttl: ttl, generation: gen}
	c.mu.Unlock()
	c.metrics.CacheMiss()

	data, err, _ := c.group.Do(key, func() (any, error) {
		return fetch(ctx)
	})

	c.mu.Lock()
	if c.gens[key] == gen {
		e := &entry{
			data:       data,
			err:        err,
			state:      StateSuccess,
			fetchedAt:  c.now(),
			ttl:        ttl,
			generation: gen,
		}
		if err != nil {
			e.state = StateError
			e.data = nil
		}
		c.entries[key] = e
	}
	c.mu.Unlock()

	return data, err
}

// StateOf reports the current query state for key; missing keys are idle.
func (c *Cache) StateOf(key string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StateIdle
	}
	if e.state == StateSuccess && c.now().Sub(e.fetchedAt) >= e.ttl {
		// Expired entries behave as absent: the next read loads again.
		return StateIdle
	}
	return e.state
}

// Invalidate removes one entry and supersedes any fetch in flight for it.
// The in-flight fetch is also forgotten in the flight group, so a reader
// arriving after the invalidation starts a fresh upstream call instead of
// joining the superseded one.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.gens[key]++
	subs := c.matchingSubs(key)
	c.mu.Unlock()
	c.group.Forget(key)

	if existed {
		c.metrics.CacheInvalidation(1)
	}
	notify(subs, key)
}

// InvalidatePrefix removes every entry whose key starts with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	var removed []string
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			removed = append(removed, key)
			delete(c.entries, key)
		}
	}
	for _, key := range removed {
		c.gens[key]++
	}
	var pairs []notification
	for _, key := range removed {
		for _, s := range c.matchingSubs(key) {
			pairs = append(pairs, notification{sub: s, key: key})
		}
	}
	c.mu.Unlock()
	for _, key := range removed {
		c.group.Forget(key)
	}

	c.metrics.CacheInvalidation(len(removed))
	for _, p := range pairs {
		notify([]*subscriber{p.sub}, p.key)
	}
}

type notification struct {
	sub *subscriber
	key string
}

// Subscribe returns a channel receiving the keys invalidated under prefix,
// plus a cancel func that removes the subscription. It is the re-render
// trigger for anything projecting cached data; slow consumers drop
// notifications instead of blocking the mutation path. Callers must cancel
// when done or the subscriber stays registered for the process lifetime.
func (c *Cache) Subscribe(prefix string) (<-chan string, func()) {
	s := &subscriber{prefix: prefix, ch: make(chan string, 16)}
	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		for i, sub := range c.subs {
			if sub == s {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
	}
	return s.ch, cancel
}

func (c *Cache) matchingSubs(key string) []*subscriber {
	var out []*subscriber
	for _, s := range c.subs {
		if strings.HasPrefix(key, s.prefix) {
			out = append(out, s)
		}
	}
	return out
}

func notify(subs []*subscriber, key string) {
	for _, s := range subs {
		select {
		case s.ch <- key:
		default:
		}
	}
}

// Fetch is the typed wrapper around Cache.GetOrFetch.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	data, err := c.GetOrFetch(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := data.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return out, nil
}
