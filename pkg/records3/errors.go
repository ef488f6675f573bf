package records3

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/localedata"
)

// Sentinel errors for S3 record operations.
var (
	ErrInvalidConfig  = errors.New("records3: invalid configuration")
	ErrAccessDenied   = errors.New("records3: access denied")
	ErrReadFailed     = errors.New("records3: read failed")
	ErrWriteFailed    = errors.New("records3: write failed")
	ErrListFailed     = errors.New("records3: list failed")
	ErrRecordTooLarge = errors.New("records3: record exceeds size limit")
	ErrInvalidObject  = errors.New("records3: invalid record object")
)

// wrapS3Error maps S3 errors onto sentinel errors. The original error is
// formatted with %v so callers match on sentinels rather than AWS types.
func wrapS3Error(err error, id string, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", localedata.NotFound(id), err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", localedata.NotFound(id), err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
