package localedata

import (
	"slices"
	"strings"
)

// Alias is an immutable reference to another location within the same
// resolution root.
type Alias struct {
	keys []string
}

// NewAlias returns an alias for the given key path. It panics if the path is
// empty.
func NewAlias(keys ...string) Alias {
	if len(keys) == 0 {
		panic("localedata: alias path must not be empty")
	}
	return Alias{keys: slices.Clone(keys)}
}

// Keys returns a copy of the alias path.
func (a Alias) Keys() []string {
	return slices.Clone(a.keys)
}

// String returns the path joined with "/".
func (a Alias) String() string {
	return strings.Join(a.keys, "/")
}

// Resolve walks root along the alias path. A terminal alias is resolved
// recursively; for a terminal composite only its alias part is resolved and
// the overrides are left to the caller.
func (a Alias) Resolve(root Mapping) (any, error) {
	return defaultResolver.resolve(root, a)
}

// Composite is an alias with a partial mapping to layer over its target.
type Composite struct {
	Alias     Alias
	Overrides Mapping
}

var defaultResolver = &resolver{merger: defaultMerger}

// resolver carries the merge settings and instrumentation used while
// resolving aliases.
type resolver struct {
	merger    *Merger
	onResolve func(Alias)
}

func (r *resolver) resolve(root Mapping, a Alias) (any, error) {
	return r.walk(root, a, nil)
}

func (r *resolver) walk(root Mapping, a Alias, stack []string) (any, error) {
	id := strings.Join(a.keys, "\x1f")
	if slices.Contains(stack, id) {
		return nil, &BrokenAliasError{Path: a.Keys(), Cycle: true}
	}
	stack = append(stack, id)

	if r.onResolve != nil {
		r.onResolve(a)
	}
	r.merger.aliases.Add(1)

	cur := root
	last := len(a.keys) - 1
	for i, key := range a.keys {
		v, ok := cur.Lookup(key)
		if !ok || v == nil {
			return nil, &BrokenAliasError{Path: a.Keys(), Key: key}
		}

		if i == last {
			switch KindOf(v) {
			case KindAlias:
				return r.walk(root, v.(Alias), stack)
			case KindComposite:
				return r.walk(root, v.(Composite).Alias, stack)
			case KindNil, KindScalar, KindMap, KindView, KindOverlay, KindDict:
				return v, nil
			}
			return v, nil
		}

		next, err := r.descend(root, v, stack)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, &BrokenAliasError{Path: a.Keys(), Key: a.keys[i+1]}
		}
		cur = next
	}
	return nil, &BrokenAliasError{Path: a.Keys()}
}

// descend turns an intermediate path value into the mapping to continue the
// walk in. It returns a nil mapping when v cannot be descended into.
func (r *resolver) descend(root Mapping, v any, stack []string) (Mapping, error) {
	switch KindOf(v) {
	case KindAlias:
		target, err := r.walk(root, v.(Alias), stack)
		if err != nil {
			return nil, err
		}
		m, _ := asMapping(target)
		return m, nil
	case KindComposite:
		c := v.(Composite)
		target, err := r.walk(root, c.Alias, stack)
		if err != nil {
			return nil, err
		}
		base, ok := asMapping(target)
		if !ok {
			return nil, nil
		}
		return r.merger.Merged(base, c.Overrides, false), nil
	case KindMap, KindView, KindOverlay, KindDict:
		m, _ := asMapping(v)
		return m, nil
	case KindNil, KindScalar:
		return nil, nil
	}
	return nil, nil
}
