package localedata

import (
	"maps"
	"slices"
)

// MergedView is a read-only union of two mappings that follows the same rules
// as Merger.Merge without copying either side.
//
// Behaviour is undefined if left or right is modified after the view is
// created.
type MergedView struct {
	left   Mapping
	right  Mapping
	merger *Merger
}

// NewMergedView returns a view of right merged over left using the default
// merger for nested compositions.
func NewMergedView(left, right Mapping) *MergedView {
	return &MergedView{left: unwrap(left), right: unwrap(right), merger: defaultMerger}
}

// Lookup returns the merged value for key. Nested mappings present on both
// sides are composed on the fly; an alias on the left becomes a Composite.
func (v *MergedView) Lookup(key string) (any, bool) {
	rv, ok := v.right.Lookup(key)
	if !ok || rv == nil {
		return v.left.Lookup(key)
	}

	lv, ok := v.left.Lookup(key)
	if !ok || lv == nil {
		return rv, true
	}

	right, ok := asMapping(rv)
	if !ok {
		return rv, true
	}
	return v.merger.mergeValue(lv, right), true
}

// Keys returns the sorted union of both sides' keys.
func (v *MergedView) Keys() []string {
	return slices.Sorted(maps.Keys(v.keySet()))
}

func (v *MergedView) Len() int {
	return len(v.keySet())
}

func (v *MergedView) keySet() map[string]struct{} {
	set := make(map[string]struct{}, v.left.Len()+v.right.Len())
	for _, k := range v.left.Keys() {
		set[k] = struct{}{}
	}
	for _, k := range v.right.Keys() {
		// Merge skips nil child values; a key that is nil on the right
		// only exists if the left has it.
		if rv, _ := v.right.Lookup(k); rv == nil {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}
