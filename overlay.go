package localedata

import (
	"maps"
	"slices"
)

// Overlay is a copy-on-write layer over a base mapping. Writes land in an
// override map and deletions are recorded as tombstones; the base is never
// touched.
type Overlay struct {
	base      Mapping
	overrides Map
	deleted   map[string]struct{}
}

// NewOverlay returns an empty overlay on top of base.
func NewOverlay(base Mapping) *Overlay {
	if base == nil {
		base = Map{}
	}
	return &Overlay{base: unwrap(base)}
}

func (o *Overlay) Lookup(key string) (any, bool) {
	if _, gone := o.deleted[key]; gone {
		return nil, false
	}
	if v, ok := o.overrides[key]; ok {
		return v, true
	}
	return o.base.Lookup(key)
}

// Get is Lookup with ErrKeyNotFound for misses.
func (o *Overlay) Get(key string) (any, error) {
	v, ok := o.Lookup(key)
	if !ok {
		return nil, keyNotFound(key)
	}
	return v, nil
}

func (o *Overlay) Set(key string, value any) {
	if o.overrides == nil {
		o.overrides = Map{}
	}
	o.overrides[key] = value
	delete(o.deleted, key)
}

// Delete tombstones key whether or not it exists.
func (o *Overlay) Delete(key string) {
	if o.deleted == nil {
		o.deleted = make(map[string]struct{})
	}
	o.deleted[key] = struct{}{}
}

// Keys returns (base ∪ overrides) minus deleted keys, sorted.
func (o *Overlay) Keys() []string {
	return slices.Sorted(maps.Keys(o.keySet()))
}

func (o *Overlay) Len() int {
	return len(o.keySet())
}

// Copy layers a new overlay over this one in constant time.
func (o *Overlay) Copy() MutableMapping {
	return &Overlay{base: o}
}

func (o *Overlay) keySet() map[string]struct{} {
	set := make(map[string]struct{}, o.base.Len()+len(o.overrides))
	for _, k := range o.base.Keys() {
		set[k] = struct{}{}
	}
	for k := range o.overrides {
		set[k] = struct{}{}
	}
	for k := range o.deleted {
		delete(set, k)
	}
	return set
}
