package localedata

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for locale data operations.
var (
	// ErrRecordNotFound is returned when no record exists for an identifier
	// or for one of its ancestors.
	ErrRecordNotFound = errors.New("localedata: record not found")

	// ErrBrokenAlias is returned when an alias path cannot be resolved
	// against its resolution root, including alias cycles.
	ErrBrokenAlias = errors.New("localedata: broken alias")

	// ErrKeyNotFound is returned by lookups for missing or deleted keys.
	ErrKeyNotFound = errors.New("localedata: key not found")

	// ErrIdentifierNotFound is returned when an identifier cannot be normalized.
	ErrIdentifierNotFound = errors.New("localedata: identifier not found")

	// ErrParentCycle is returned when the parent table makes an inheritance
	// chain loop back on itself.
	ErrParentCycle = errors.New("localedata: parent chain cycle")

	// ErrInvalidParentTable is returned when a parent table cannot be parsed.
	ErrInvalidParentTable = errors.New("localedata: invalid parent table")

	// ErrTypeMismatch is returned by typed accessors when a value has an
	// unexpected kind.
	ErrTypeMismatch = errors.New("localedata: unexpected value type")

	// ErrInvalidRecord is returned when a document cannot be decoded.
	ErrInvalidRecord = errors.New("localedata: invalid record")
)

// RecordNotFoundError reports the identifier whose record is missing.
type RecordNotFoundError struct {
	ID string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("localedata: record %q not found", e.ID)
}

// Is makes errors.Is(err, ErrRecordNotFound) hold.
func (e *RecordNotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// NotFound builds the error sources return for a missing record.
func NotFound(id string) error {
	return &RecordNotFoundError{ID: id}
}

// BrokenAliasError describes an alias that could not be resolved.
type BrokenAliasError struct {
	Path  []string // alias path being resolved
	Key   string   // segment that was missing or not a mapping
	Cycle bool     // resolution revisited an alias already on the stack
}

func (e *BrokenAliasError) Error() string {
	path := strings.Join(e.Path, "/")
	if e.Cycle {
		return fmt.Sprintf("localedata: alias cycle at %q", path)
	}
	return fmt.Sprintf("localedata: broken alias %q: missing %q", path, e.Key)
}

// Is makes errors.Is(err, ErrBrokenAlias) hold.
func (e *BrokenAliasError) Is(target error) bool {
	return target == ErrBrokenAlias
}

func keyNotFound(key string) error {
	return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}
