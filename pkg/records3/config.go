package records3

import (
	"fmt"

	"github.com/dmitrymomot/localedata"
)

const (
	// DefaultRegion is used when Config.Region is empty.
	DefaultRegion = "us-east-1"

	// DefaultMaxRecordSize caps the size of a single record object (16 MB).
	DefaultMaxRecordSize int64 = 16 << 20
)

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"LOCALEDATA_S3_BUCKET"`

	// AccessKey is the AWS access key ID (required by New).
	AccessKey string `env:"LOCALEDATA_S3_ACCESS_KEY"`

	// SecretKey is the AWS secret access key (required by New).
	SecretKey string `env:"LOCALEDATA_S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL for MinIO and other S3-compatible services.
	Endpoint string `env:"LOCALEDATA_S3_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"LOCALEDATA_S3_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every object key, e.g. "cldr/v46/".
	Prefix string `env:"LOCALEDATA_S3_PREFIX"`

	// Format is the record encoding; it also picks the key extension
	// (default: json).
	Format localedata.Format `env:"LOCALEDATA_S3_FORMAT" envDefault:"json"`

	// MaxRecordSize is the largest object Read accepts in bytes (default: 16MB).
	MaxRecordSize int64 `env:"LOCALEDATA_S3_MAX_RECORD_SIZE"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"LOCALEDATA_S3_PATH_STYLE"`
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Format == "" {
		c.Format = localedata.FormatJSON
	}
	if c.MaxRecordSize <= 0 {
		c.MaxRecordSize = DefaultMaxRecordSize
	}
}

// validate checks the fields every Source needs.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	switch c.Format {
	case localedata.FormatJSON, localedata.FormatYAML:
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}

// validateCredentials checks the fields New needs to build a client.
func (c *Config) validateCredentials() error {
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: access key and secret key are required", ErrInvalidConfig)
	}
	return nil
}
