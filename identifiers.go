package localedata

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

const listingKey = "\x00list"

// Identifiers returns every identifier the source holds a record for, sorted,
// without RootID. The listing is fetched once and reused afterwards.
func (c *Cache) Identifiers(ctx context.Context) ([]string, error) {
	all, err := c.listing(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(id string) bool { return id == RootID }), nil
}

// Exists reports whether name, after normalization, identifies a record.
// Listing failures count as absence.
func (c *Cache) Exists(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	if _, ok := c.cached(name, true); ok {
		return true
	}
	_, err := c.Normalize(ctx, name)
	return err == nil
}

// Normalize maps name to the canonical identifier that matches it case
// insensitively, e.g. "en_us" to "en_US". Identifiers already loaded are
// checked before the source listing is consulted.
func (c *Cache) Normalize(ctx context.Context, name string) (string, error) {
	want := fold(strings.TrimSpace(name))
	if want == "" {
		return "", fmt.Errorf("%w: %q", ErrIdentifierNotFound, name)
	}

	if id, ok := match(c.loadedIDs(), want); ok {
		return id, nil
	}

	ids, err := c.listing(ctx)
	if err != nil {
		return "", err
	}
	if id, ok := match(ids, want); ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrIdentifierNotFound, name)
}

func (c *Cache) loadedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.merged)+len(c.own))
	for id := range c.merged {
		ids = append(ids, id)
	}
	for id := range c.own {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// listing returns a private copy of the sorted, de-duplicated source listing.
func (c *Cache) listing(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	ids := c.ids
	c.mu.Unlock()
	if ids != nil {
		return slices.Clone(ids), nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(listingKey, func() (any, error) {
		ids, err := c.src.List(shared)
		if err != nil {
			return nil, fmt.Errorf("localedata: listing identifiers: %w", err)
		}
		ids = slices.Clone(ids)
		slices.Sort(ids)
		ids = slices.Compact(ids)
		if ids == nil {
			ids = []string{}
		}

		c.mu.Lock()
		c.ids = ids
		c.mu.Unlock()
		return ids, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]string)), nil
	}
}

func match(ids []string, folded string) (string, bool) {
	for _, id := range ids {
		if fold(id) == folded {
			return id, true
		}
	}
	return "", false
}

// fold builds a new Caser on every call; Casers keep state and are not safe
// for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
