// Package localedata loads hierarchical locale data and serves it through a
// lazily resolving, memoizing facade.
//
// Locale records are nested key/value documents. Each identifier inherits
// from a parent (en_US from en, en from root), and the data returned for an
// identifier is its own record merged over everything it inherits. Values may
// be aliases pointing at other paths in the same merged tree; they resolve on
// first access and the result is memoized per facade.
//
// # Quick Start
//
//	parents, err := localedata.LoadParentTable(os.DirFS("data"), "parents.yaml")
//	if err != nil {
//	    return err
//	}
//	src, err := recordfs.New(os.DirFS("data"), recordfs.WithDir("locales"))
//	if err != nil {
//	    return err
//	}
//
//	cache := localedata.New(src,
//	    localedata.WithParents(parents),
//	    localedata.WithLogger(log),
//	)
//
//	d, err := cache.Load(ctx, "en_US")
//	if err != nil {
//	    return err
//	}
//	wide, err := d.Path("months", "format", "wide")
//
// # Merging
//
// Small merges copy the parent and apply the child in place. Once the
// combined size reaches the copy threshold a [MergedView] layers the child
// over the parent instead. Values are identical either way; only allocation
// differs. See [Merger] and [WithCopyThreshold].
//
// # Aliases
//
// An [Alias] is a path into the root of the merged tree. In documents it is
// written as {"@alias": "calendars/gregorian"} or with the YAML !alias tag.
// When a child record refines data that its parent reaches through an alias,
// the two become a [Composite]: the alias target with the child's keys
// layered on top.
//
// # Sources
//
// Records come from a [Source]. [MemorySource] serves tests and embedded
// data; the recordfs, records3, recordredis and recordpg packages read from a
// file system, S3, Redis and PostgreSQL.
//
// # Mutability
//
// Facades returned by Load are shared by every caller. Set and Delete write
// into a per-facade [Overlay], never into the source's records or an
// ancestor's data, and are not synchronized with concurrent readers.
package localedata
