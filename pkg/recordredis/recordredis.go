package recordredis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localedata"
)

// DefaultPrefix namespaces record keys when no prefix is configured.
const DefaultPrefix = "localedata"

// scanCount is the COUNT hint passed to SCAN.
const scanCount = 256

// Option configures a Source.
type Option func(*Source)

// WithPrefix sets the key namespace. Records live under {prefix}:{id}.
// Default: DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithFormat sets the document encoding.
// Default: JSON.
func WithFormat(f localedata.Format) Option {
	return func(s *Source) {
		s.format = f
	}
}

// Source reads locale records from Redis.
type Source struct {
	client redis.UniversalClient
	prefix string
	format localedata.Format
}

// New creates a Source over client. The caller keeps ownership of the client.
func New(client redis.UniversalClient, opts ...Option) (*Source, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	s := &Source{
		client: client,
		prefix: DefaultPrefix,
		format: localedata.FormatJSON,
	}
	for _, opt := range opts {
		opt(s)
	}

	switch s.format {
	case localedata.FormatJSON, localedata.FormatYAML:
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidRecord, s.format)
	}
	return s, nil
}

// Read fetches and decodes the record for id.
func (s *Source) Read(ctx context.Context, id string) (localedata.Map, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, localedata.NotFound(id)
	}
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}

	m, err := localedata.DecodeFormat(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidRecord, id, err)
	}
	return m, nil
}

// List scans the key namespace and returns every identifier, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	pattern := escapeGlob(s.prefix) + ":*"
	keyPrefix := s.prefix + ":"

	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return nil, errors.Join(ErrListFailed, err)
		}
		for _, key := range keys {
			if id := strings.TrimPrefix(key, keyPrefix); id != "" {
				ids = append(ids, id)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Put encodes m and stores it as the record for id without expiry.
func (s *Source) Put(ctx context.Context, id string, m localedata.Mapping) error {
	data, err := localedata.EncodeFormat(s.format, m)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(id), data, 0).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *Source) key(id string) string {
	return s.prefix + ":" + id
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var _ localedata.Source = (*Source)(nil)
