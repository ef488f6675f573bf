package recordredis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("recordredis: empty connection URL")
	ErrFailedToParseURL   = errors.New("recordredis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("recordredis: failed to establish connection")
	ErrNilClient          = errors.New("recordredis: client cannot be nil")
	ErrReadFailed         = errors.New("recordredis: read failed")
	ErrWriteFailed        = errors.New("recordredis: write failed")
	ErrListFailed         = errors.New("recordredis: list failed")
	ErrInvalidRecord      = errors.New("recordredis: invalid record")
)
