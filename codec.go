package localedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document conventions for aliases.
const (
	// AliasKey marks a mapping as an alias. Its value is a "/"-separated path
	// or a list of keys; any sibling keys become the composite's overrides.
	AliasKey = "@alias"

	// AliasTag marks a YAML scalar ("a/b") or sequence ([a, b]) as an alias.
	AliasTag = "!alias"
)

// Format identifies a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Ext returns the canonical file extension for f.
func (f Format) Ext() string {
	return "." + string(f)
}

// FormatFromExt maps a file extension (case-insensitive, with dot) to a Format.
func FormatFromExt(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// DecodeFormat decodes data according to f.
func DecodeFormat(f Format, data []byte) (Map, error) {
	switch f {
	case FormatYAML:
		return DecodeYAML(data)
	case FormatJSON:
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRecord, f)
	}
}

// EncodeFormat encodes m according to f. Views and overlays are flattened;
// aliases are written using the document conventions.
func EncodeFormat(f Format, m Mapping) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(Materialize(m))
	case FormatJSON:
		return json.Marshal(Materialize(m))
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRecord, f)
	}
}

// DecodeJSON decodes a JSON object into a record.
func DecodeJSON(data []byte) (Map, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	return Decode(doc)
}

// Decode converts an already parsed document into a record, turning alias
// markers into Alias and Composite values.
func Decode(doc map[string]any) (Map, error) {
	if doc == nil {
		return Map{}, nil
	}
	v, err := decodeValue(doc)
	if err != nil {
		return nil, err
	}
	m, ok := v.(Map)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a plain mapping", ErrInvalidRecord)
	}
	return m, nil
}

func decodeValue(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		return decodeMap(v)
	case Map:
		return decodeMap(v)
	case []any:
		list := make([]any, len(v))
		for i, item := range v {
			decoded, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			list[i] = decoded
		}
		return list, nil
	default:
		return v, nil
	}
}

func decodeMap(src map[string]any) (any, error) {
	m := make(Map, len(src))
	for key, raw := range src {
		if raw == nil {
			m[key] = nil
			continue
		}
		v, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m[key] = v
	}
	return markAlias(m)
}

// markAlias turns a mapping carrying AliasKey into an Alias or Composite.
func markAlias(m Map) (any, error) {
	raw, ok := m[AliasKey]
	if !ok {
		return m, nil
	}
	alias, err := aliasFrom(raw)
	if err != nil {
		return nil, err
	}
	if len(m) == 1 {
		return alias, nil
	}
	overrides := maps.Clone(m)
	delete(overrides, AliasKey)
	return Composite{Alias: alias, Overrides: overrides}, nil
}

func aliasFrom(raw any) (Alias, error) {
	switch v := raw.(type) {
	case Alias:
		return v, nil
	case string:
		return parseAliasPath(v)
	case []any:
		keys := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok || s == "" {
				return Alias{}, fmt.Errorf("%w: alias keys must be non-empty strings, got %v", ErrInvalidRecord, item)
			}
			keys = append(keys, s)
		}
		if len(keys) == 0 {
			return Alias{}, fmt.Errorf("%w: empty alias path", ErrInvalidRecord)
		}
		return NewAlias(keys...), nil
	default:
		return Alias{}, fmt.Errorf("%w: alias must be a path string or list, got %T", ErrInvalidRecord, raw)
	}
}

func parseAliasPath(path string) (Alias, error) {
	keys := strings.Split(strings.Trim(strings.TrimSpace(path), "/"), "/")
	for _, k := range keys {
		if k == "" {
			return Alias{}, fmt.Errorf("%w: malformed alias path %q", ErrInvalidRecord, path)
		}
	}
	return NewAlias(keys...), nil
}

// DecodeYAML decodes a YAML document into a record. Besides the AliasKey
// convention it understands AliasTag, anchors and merge keys.
func DecodeYAML(data []byte) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	if doc.Kind == 0 {
		return Map{}, nil
	}
	v, err := decodeNode(&doc)
	if err != nil {
		return nil, err
	}
	m, ok := v.(Map)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a plain mapping", ErrInvalidRecord)
	}
	return m, nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Map{}, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == AliasTag {
			return parseAliasPath(n.Value)
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Join(ErrInvalidRecord, err)
		}
		return v, nil
	case yaml.SequenceNode:
		if n.Tag == AliasTag {
			keys := make([]any, len(n.Content))
			for i, c := range n.Content {
				keys[i] = c.Value
			}
			return aliasFrom(keys)
		}
		list := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case yaml.MappingNode:
		return decodeMappingNode(n)
	default:
		return nil, fmt.Errorf("%w: unexpected YAML node at line %d", ErrInvalidRecord, n.Line)
	}
}

func decodeMappingNode(n *yaml.Node) (any, error) {
	m := make(Map, len(n.Content)/2)
	var inherited []Map
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode {
			keyNode = keyNode.Alias
		}

		v, err := decodeNode(valNode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyNode.Value, err)
		}

		if keyNode.Tag == "!!merge" {
			switch merged := v.(type) {
			case Map:
				inherited = append(inherited, merged)
			case []any:
				for _, item := range merged {
					if im, ok := item.(Map); ok {
						inherited = append(inherited, im)
					}
				}
			}
			continue
		}
		m[keyNode.Value] = v
	}
	for _, base := range inherited {
		for k, v := range base {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
	}
	return markAlias(m)
}

// MarshalJSON writes the alias as {"@alias": [keys...]}.
func (a Alias) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{AliasKey: a.keys})
}

// MarshalYAML writes the alias as a tagged flow sequence.
func (a Alias) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: AliasTag, Style: yaml.FlowStyle}
	for _, k := range a.keys {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k})
	}
	return node, nil
}

func (c Composite) encoded() Map {
	out := Map{}
	if c.Overrides != nil {
		out = Materialize(c.Overrides)
	}
	out[AliasKey] = c.Alias.keys
	return out
}

// MarshalJSON writes the overrides with an AliasKey entry.
func (c Composite) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.encoded())
}

// MarshalYAML writes the overrides with an AliasKey entry.
func (c Composite) MarshalYAML() (any, error) {
	return c.encoded(), nil
}

// MarshalJSON flattens the view.
func (v *MergedView) MarshalJSON() ([]byte, error) {
	return json.Marshal(Materialize(v))
}

// MarshalJSON flattens the overlay.
func (o *Overlay) MarshalJSON() ([]byte, error) {
	return json.Marshal(Materialize(o))
}

// MarshalJSON writes the alias-resolved contents of the Dict.
func (d *Dict) MarshalJSON() ([]byte, error) {
	m, err := d.Materialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
