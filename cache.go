package localedata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/localedata/pkg/logger"
)

// Cache loads locale records, merges them over their ancestors and keeps the
// result for the lifetime of the Cache. Loading the same identifier always
// returns the same *Dict, so callers may key derived data on it.
//
// A Cache is safe for concurrent use. Entries are never evicted.
type Cache struct {
	src     Source
	parents ParentTable
	merger  *Merger
	res     *resolver
	log     *slog.Logger

	mu     sync.Mutex
	merged map[string]*Dict
	own    map[string]*Dict
	bases  map[string]Mapping
	ids    []string

	group singleflight.Group
	loads atomic.Int64
}

// Stats reports what a Cache has done so far.
type Stats struct {
	Loads            int64 // records read and published
	CopyMerges       int64 // merges performed by copying
	ViewMerges       int64 // merges performed with a MergedView
	AliasResolutions int64 // alias walks, nested ones included
}

// New creates an empty Cache reading records from src.
//
// Example:
//
//	src, _ := recordfs.New(os.DirFS("locale-data"))
//	c := localedata.New(src,
//	    localedata.WithParents(parents),
//	    localedata.WithLogger(log),
//	)
//	d, err := c.Load(ctx, "en_US")
func New(src Source, opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.NewNope()
	}

	m := NewMerger(o.threshold)
	return &Cache{
		src:     src,
		parents: o.parents,
		merger:  m,
		res:     &resolver{merger: m, onResolve: o.onResolve},
		log:     o.logger,
		merged:  make(map[string]*Dict),
		own:     make(map[string]*Dict),
		bases:   make(map[string]Mapping),
	}
}

// Load returns the locale data for id, merged over its inheritance chain.
// At most one load runs per identifier; concurrent callers share its result.
// It fails with an error matching ErrRecordNotFound if id or any ancestor has
// no record, and with ErrParentCycle if the parent table loops.
//
// Cancelling ctx makes Load return ctx.Err() without aborting a read other
// callers may be waiting on.
func (c *Cache) Load(ctx context.Context, id string, opts ...LoadOption) (*Dict, error) {
	o := loadOptions{inherit: true}
	for _, opt := range opts {
		opt(&o)
	}
	inherit := o.inherit && id != RootID

	if d, ok := c.cached(id, inherit); ok {
		return d, nil
	}
	if inherit {
		if _, err := c.parents.Chain(id); err != nil {
			return nil, err
		}
	}
	return c.load(ctx, id, inherit)
}

// Parent returns the identifier id inherits from, "" for RootID.
func (c *Cache) Parent(id string) string {
	return c.parents.Parent(id)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Loads:            c.loads.Load(),
		CopyMerges:       c.merger.copies.Load(),
		ViewMerges:       c.merger.views.Load(),
		AliasResolutions: c.merger.aliases.Load(),
	}
}

func (c *Cache) load(ctx context.Context, id string, inherit bool) (*Dict, error) {
	key := id
	if !inherit && id != RootID {
		key = "\x00own:" + id
	}

	// The computation is shared by every waiter, so one caller's
	// cancellation must not fail the others.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if d, ok := c.cached(id, inherit); ok {
			return d, nil
		}
		return c.compute(shared, id, inherit)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dict), nil
	}
}

func (c *Cache) compute(ctx context.Context, id string, inherit bool) (*Dict, error) {
	ctx = logger.WithLocale(ctx, id)

	raw, err := c.src.Read(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("localedata: reading %q: %w", id, err)
	}

	var data Mapping = raw
	var parent string
	if inherit {
		parent = c.parents.Parent(id)
		if _, err := c.load(ctx, parent, parent != RootID); err != nil {
			return nil, err
		}
		data = c.merger.Merged(c.base(parent), raw, false)
	}

	// data may be the source's record or an operand of descendants' views.
	// Writes through the Dict land in an Overlay on top of it.
	d := newDict(NewOverlay(data), c.res)
	c.publish(id, inherit, d, data)
	c.loads.Add(1)

	c.log.DebugContext(ctx, "locale data loaded",
		slog.String("parent", parent),
		slog.Int("own_keys", raw.Len()),
		slog.Bool("inherited", inherit),
	)
	return d, nil
}

func (c *Cache) cached(id string, inherit bool) (*Dict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.table(id, inherit)[id]
	return d, ok
}

func (c *Cache) publish(id string, inherit bool, d *Dict, data Mapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table(id, inherit)[id] = d
	if inherit || id == RootID {
		c.bases[id] = data
	}
}

// base returns the unwritable merged data of a published inherited entry.
func (c *Cache) base(id string) Mapping {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bases[id]
}

// table returns the map id's entry lives in. Caller must hold the mutex.
func (c *Cache) table(id string, inherit bool) map[string]*Dict {
	if inherit || id == RootID {
		return c.merged
	}
	return c.own
}
