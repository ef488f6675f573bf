package localedata

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// RootID is the identifier of the base record every chain ends at.
const RootID = "root"

// ParentTable maps identifiers to an explicit parent, overriding the default
// "strip the last segment" rule.
type ParentTable map[string]string

// Parent returns the identifier id inherits from. The parent of RootID is "".
func (t ParentTable) Parent(id string) string {
	if id == RootID {
		return ""
	}
	if p, ok := t[id]; ok && p != "" {
		return p
	}
	if i := strings.LastIndexByte(id, '_'); i > 0 {
		return id[:i]
	}
	return RootID
}

// Chain returns the inheritance chain from id up to and including RootID.
func (t ParentTable) Chain(id string) ([]string, error) {
	chain := []string{id}
	seen := map[string]struct{}{id: {}}
	for cur := id; cur != RootID; {
		cur = t.Parent(cur)
		if _, dup := seen[cur]; dup {
			return nil, fmt.Errorf("%w: %s -> %s", ErrParentCycle, strings.Join(chain, " -> "), cur)
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)
	}
	return chain, nil
}

// ParentOf returns the parent of id with no exceptions configured.
func ParentOf(id string) string {
	return ParentTable(nil).Parent(id)
}

// ParseParentTable reads a YAML parent table. Both a flat "child: parent"
// mapping and one nested under a "parent_exceptions" key are accepted.
func ParseParentTable(data []byte) (ParentTable, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidParentTable, err)
	}
	if nested, ok := doc["parent_exceptions"]; ok {
		m, ok := nested.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: parent_exceptions must be a mapping", ErrInvalidParentTable)
		}
		doc = m
	}

	table := make(ParentTable, len(doc))
	for child, v := range doc {
		parent, ok := v.(string)
		if !ok || parent == "" {
			return nil, fmt.Errorf("%w: parent of %q must be a non-empty string", ErrInvalidParentTable, child)
		}
		table[child] = parent
	}
	return table, nil
}

// LoadParentTable reads and parses the parent table file name from fsys.
func LoadParentTable(fsys fs.FS, name string) (ParentTable, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	return ParseParentTable(data)
}
