package localedata

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// maxExpandDepth bounds Materialize so that an alias pointing at one of its
// own ancestors cannot expand forever.
const maxExpandDepth = 64

// Dict is a mapping facade that resolves aliases on read. Every alias in a
// Dict tree is resolved against the same root: the storage of the Dict the
// tree was created from.
//
// Reads are safe for concurrent use. Resolved nested mappings are wrapped in
// sub-Dicts and memoized, so the alias walk for a key happens at most once per
// Dict. Set, Delete and Copy are not safe for concurrent use with other calls.
type Dict struct {
	data MutableMapping
	root Mapping
	res  *resolver
	memo *xsync.MapOf[string, *Dict]
}

// NewDict wraps data in a Dict rooted at itself. Data that does not accept
// writes is layered under an Overlay first.
func NewDict(data Mapping) *Dict {
	return newDict(data, defaultResolver)
}

func newDict(data Mapping, res *resolver) *Dict {
	storage := mutable(data)
	return &Dict{
		data: storage,
		root: storage,
		res:  res,
		memo: xsync.NewMapOf[string, *Dict](),
	}
}

// child wraps a nested mapping. Nested storage may be shared with other
// locales after a copying merge, so writes always go to an Overlay.
func (d *Dict) child(data Mapping) *Dict {
	return &Dict{
		data: NewOverlay(data),
		root: d.root,
		res:  d.res,
		memo: xsync.NewMapOf[string, *Dict](),
	}
}

func mutable(data Mapping) MutableMapping {
	data = unwrap(data)
	if data == nil {
		return Map{}
	}
	if m, ok := data.(MutableMapping); ok {
		return m
	}
	return NewOverlay(data)
}

// Get returns the value for key with aliases resolved. Mapping values are
// returned as *Dict sharing this Dict's root.
func (d *Dict) Get(key string) (any, error) {
	if sub, ok := d.memo.Load(key); ok {
		return sub, nil
	}

	val, ok := d.data.Lookup(key)
	if !ok {
		return nil, keyNotFound(key)
	}

	switch KindOf(val) {
	case KindDict:
		return val, nil
	case KindAlias:
		resolved, err := d.res.resolve(d.root, val.(Alias))
		if err != nil {
			return nil, err
		}
		val = resolved
	case KindComposite:
		c := val.(Composite)
		target, err := d.res.resolve(d.root, c.Alias)
		if err != nil {
			return nil, err
		}
		base, ok := asMapping(target)
		if !ok {
			return nil, fmt.Errorf("%w: %q targets a %s value", ErrBrokenAlias, c.Alias, KindOf(target))
		}
		val = d.res.merger.Merged(base, c.Overrides, true)
	case KindNil, KindScalar, KindMap, KindView, KindOverlay:
	}

	if m, ok := asMapping(val); ok {
		sub, _ := d.memo.LoadOrStore(key, d.child(m))
		return sub, nil
	}
	return val, nil
}

// Lookup returns the stored value for key without resolving aliases.
func (d *Dict) Lookup(key string) (any, bool) {
	return d.data.Lookup(key)
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.data.Lookup(key)
	return ok
}

func (d *Dict) Keys() []string { return d.data.Keys() }

func (d *Dict) Len() int { return d.data.Len() }

// Set stores value under key. No alias semantics apply.
func (d *Dict) Set(key string, value any) {
	d.data.Set(key, value)
	d.memo.Delete(key)
}

// Delete removes key.
func (d *Dict) Delete(key string) {
	d.data.Delete(key)
	d.memo.Delete(key)
}

// Copy returns a Dict over a copy of the storage. The copy shares the root
// and any nested Dicts resolved so far.
func (d *Dict) Copy() *Dict {
	cp := &Dict{
		data: d.data.Copy(),
		root: d.root,
		res:  d.res,
		memo: xsync.NewMapOf[string, *Dict](),
	}
	d.memo.Range(func(key string, sub *Dict) bool {
		cp.memo.Store(key, sub)
		return true
	})
	return cp
}

// Dict returns the nested mapping under key.
func (d *Dict) Dict(key string) (*Dict, error) {
	v, err := d.Get(key)
	if err != nil {
		return nil, err
	}
	sub, ok := v.(*Dict)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %s, not a mapping", ErrTypeMismatch, key, KindOf(v))
	}
	return sub, nil
}

// String returns the string value under key.
func (d *Dict) String(key string) (string, error) {
	v, err := d.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is a %s, not a string", ErrTypeMismatch, key, KindOf(v))
	}
	return s, nil
}

// Path follows keys through nested mappings and returns the final value.
func (d *Dict) Path(keys ...string) (any, error) {
	var cur any = d
	for i, key := range keys {
		sub, ok := cur.(*Dict)
		if !ok {
			return nil, fmt.Errorf("%w: %q is a %s, not a mapping", ErrTypeMismatch, keys[i-1], KindOf(cur))
		}
		v, err := sub.Get(key)
		if err != nil {
			return nil, err
		}
		cur = v
	}
	return cur, nil
}

// Materialize returns a deep, alias-resolved plain copy of the Dict.
func (d *Dict) Materialize() (Map, error) {
	return d.materialize(0)
}

func (d *Dict) materialize(depth int) (Map, error) {
	if depth > maxExpandDepth {
		return nil, fmt.Errorf("%w: expansion deeper than %d levels", ErrBrokenAlias, maxExpandDepth)
	}
	out := make(Map, d.Len())
	for _, key := range d.Keys() {
		v, err := d.Get(key)
		if err != nil {
			return nil, err
		}
		if sub, ok := v.(*Dict); ok {
			nested, err := sub.materialize(depth + 1)
			if err != nil {
				return nil, err
			}
			out[key] = nested
			continue
		}
		out[key] = v
	}
	return out, nil
}
