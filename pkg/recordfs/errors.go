package recordfs

import "errors"

var (
	ErrNilFS             = errors.New("recordfs: file system cannot be nil")
	ErrInvalidFile       = errors.New("recordfs: invalid record file")
	ErrInvalidIdentifier = errors.New("recordfs: invalid identifier")
)
