package localedata

import (
	"maps"
	"slices"
)

// Mapping is the read side shared by every mapping kind in a record tree.
// Lookup returns stored values as-is; aliases are only resolved by Dict.
type Mapping interface {
	Lookup(key string) (any, bool)
	Keys() []string
	Len() int
}

// MutableMapping is a Mapping that accepts writes.
type MutableMapping interface {
	Mapping
	Set(key string, value any)
	Delete(key string)
	Copy() MutableMapping
}

// Map is the plain mapping records are decoded into.
type Map map[string]any

func (m Map) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

func (m Map) Len() int { return len(m) }

func (m Map) Set(key string, value any) { m[key] = value }

func (m Map) Delete(key string) { delete(m, key) }

// Copy returns a shallow copy.
func (m Map) Copy() MutableMapping {
	return maps.Clone(m)
}

// asMapping returns v viewed as a Mapping. A Dict yields its storage so that
// merges operate on raw, unresolved data.
func asMapping(v any) (Mapping, bool) {
	switch KindOf(v) {
	case KindMap:
		if m, ok := v.(map[string]any); ok {
			return Map(m), true
		}
		return v.(Map), true
	case KindView:
		return v.(*MergedView), true
	case KindOverlay:
		return v.(*Overlay), true
	case KindDict:
		return v.(*Dict).data, true
	case KindNil, KindScalar, KindAlias, KindComposite:
		return nil, false
	}
	return nil, false
}

// Materialize deep-copies m into plain Maps. Views and overlays are flattened;
// aliases and composites are kept as stored.
func Materialize(m Mapping) Map {
	out := make(Map, m.Len())
	for _, key := range m.Keys() {
		v, ok := m.Lookup(key)
		if !ok {
			continue
		}
		if nested, ok := asMapping(v); ok {
			out[key] = Materialize(nested)
			continue
		}
		if c, ok := v.(Composite); ok {
			if c.Overrides != nil {
				c.Overrides = Materialize(c.Overrides)
			}
			out[key] = c
			continue
		}
		out[key] = v
	}
	return out
}
