package recordfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/dmitrymomot/localedata"
)

// Source reads locale records from an fs.FS.
type Source struct {
	fsys    fs.FS
	formats []localedata.Format
}

// Option configures a Source.
type Option func(*options)

type options struct {
	dir     string
	formats []localedata.Format
}

// WithDir selects the directory holding the records.
// Default: the root of the file system.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithFormats sets the formats tried, in order, when reading a record.
// Default: YAML, then JSON.
func WithFormats(formats ...localedata.Format) Option {
	return func(o *options) {
		if len(formats) > 0 {
			o.formats = formats
		}
	}
}

// New creates a Source over fsys.
func New(fsys fs.FS, opts ...Option) (*Source, error) {
	if fsys == nil {
		return nil, ErrNilFS
	}

	o := &options{
		dir:     ".",
		formats: []localedata.Format{localedata.FormatYAML, localedata.FormatJSON},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.dir != "" && o.dir != "." {
		sub, err := fs.Sub(fsys, o.dir)
		if err != nil {
			return nil, fmt.Errorf("recordfs: opening %q: %w", o.dir, err)
		}
		fsys = sub
	}

	return &Source{fsys: fsys, formats: o.formats}, nil
}

// Read decodes the record for id from the first matching file.
func (s *Source) Read(ctx context.Context, id string) (localedata.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	for _, f := range s.formats {
		for _, ext := range extensions(f) {
			name := id + ext
			data, err := fs.ReadFile(s.fsys, name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading %q: %w", name, err)
			}

			m, err := localedata.DecodeFormat(f, data)
			if err != nil {
				return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, name, err)
			}
			return m, nil
		}
	}
	return nil, localedata.NotFound(id)
}

// List returns the identifiers of every record file, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if !s.accepts(ext) {
			continue
		}
		if id := strings.TrimSuffix(e.Name(), ext); id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (s *Source) accepts(ext string) bool {
	for _, f := range s.formats {
		if slices.Contains(extensions(f), ext) {
			return true
		}
	}
	return false
}

func extensions(f localedata.Format) []string {
	if f == localedata.FormatYAML {
		return []string{".yaml", ".yml"}
	}
	return []string{f.Ext()}
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`) && fs.ValidPath(id)
}

var _ localedata.Source = (*Source)(nil)
