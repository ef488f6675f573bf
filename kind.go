package localedata

// Kind classifies the values that can appear in a record tree.
type Kind uint8

const (
	KindNil Kind = iota
	KindScalar
	KindMap
	KindAlias
	KindComposite
	KindView
	KindOverlay
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindAlias:
		return "alias"
	case KindComposite:
		return "composite"
	case KindView:
		return "view"
	case KindOverlay:
		return "overlay"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of v. Anything that is not one of the mapping,
// alias or composite types is a scalar.
func KindOf(v any) Kind {
	switch v := v.(type) {
	case nil:
		return KindNil
	case Map, map[string]any:
		return KindMap
	case Alias:
		return KindAlias
	case Composite:
		return KindComposite
	case *MergedView:
		if v == nil {
			return KindNil
		}
		return KindView
	case *Overlay:
		if v == nil {
			return KindNil
		}
		return KindOverlay
	case *Dict:
		if v == nil {
			return KindNil
		}
		return KindDict
	default:
		return KindScalar
	}
}

// IsMapping reports whether k is one of the mapping kinds.
func (k Kind) IsMapping() bool {
	switch k {
	case KindMap, KindView, KindOverlay, KindDict:
		return true
	case KindNil, KindScalar, KindAlias, KindComposite:
		return false
	}
	return false
}

// IsMutable reports whether values of kind k accept writes.
func (k Kind) IsMutable() bool {
	switch k {
	case KindMap, KindOverlay, KindDict:
		return true
	case KindNil, KindScalar, KindAlias, KindComposite, KindView:
		return false
	}
	return false
}
