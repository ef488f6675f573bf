package recordpg

import "errors"

var (
	ErrFailedToParseConfig    = errors.New("recordpg: failed to parse database configuration")
	ErrFailedToOpenConnection = errors.New("recordpg: failed to open database connection")
	ErrNilQuerier             = errors.New("recordpg: querier cannot be nil")
	ErrReadFailed             = errors.New("recordpg: read failed")
	ErrWriteFailed            = errors.New("recordpg: write failed")
	ErrListFailed             = errors.New("recordpg: list failed")
	ErrInvalidRecord          = errors.New("recordpg: invalid record")
	ErrSetDialect             = errors.New("recordpg migrator: failed to set dialect")
	ErrApplyMigrations        = errors.New("recordpg migrator: failed to apply migrations")
)
