package recordpg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/localedata"
)

const (
	readQuery = `SELECT document FROM locale_records WHERE identifier = $1`
	listQuery = `SELECT identifier FROM locale_records ORDER BY identifier`
	putQuery  = `INSERT INTO locale_records (identifier, document)
VALUES ($1, $2)
ON CONFLICT (identifier) DO UPDATE
SET document = EXCLUDED.document, updated_at = now()`
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the Source
// uses.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Source reads locale records from the locale_records table. Documents are
// stored as jsonb using the localedata JSON conventions.
type Source struct {
	db Querier
}

// New creates a Source over db. Run Migrate first to create the table.
func New(db Querier) (*Source, error) {
	if db == nil {
		return nil, ErrNilQuerier
	}
	return &Source{db: db}, nil
}

// Read fetches and decodes the record for id.
func (s *Source) Read(ctx context.Context, id string) (localedata.Map, error) {
	var doc []byte
	err := s.db.QueryRow(ctx, readQuery, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, localedata.NotFound(id)
	}
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}

	m, err := localedata.DecodeJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidRecord, id, err)
	}
	return m, nil
}

// List returns every stored identifier, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, listQuery)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	return ids, nil
}

// Put stores m as the record for id, replacing any previous document.
func (s *Source) Put(ctx context.Context, id string, m localedata.Mapping) error {
	doc, err := localedata.EncodeFormat(localedata.FormatJSON, m)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, putQuery, id, doc); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

var _ localedata.Source = (*Source)(nil)
