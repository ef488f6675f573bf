package records3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/localedata"
)

// API is the subset of *s3.Client the Source uses.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Source reads locale records stored as objects in an S3 bucket.
// Object keys are {Prefix}{id}.{Format}.
type Source struct {
	api API
	cfg Config
}

// New creates a Source with its own S3 client.
func New(cfg Config) (*Source, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.validateCredentials(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &Source{api: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

// NewWithClient creates a Source over an existing client. Credentials in cfg
// are ignored.
func NewWithClient(api API, cfg Config) (*Source, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: client is nil", ErrInvalidConfig)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Source{api: api, cfg: cfg}, nil
}

// Read fetches and decodes the record for id.
func (s *Source) Read(ctx context.Context, id string) (localedata.Map, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return nil, wrapS3Error(err, id, ErrReadFailed)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, s.cfg.MaxRecordSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if int64(len(data)) > s.cfg.MaxRecordSize {
		return nil, fmt.Errorf("%w: %q is larger than %d bytes", ErrRecordTooLarge, id, s.cfg.MaxRecordSize)
	}

	m, err := localedata.DecodeFormat(s.cfg.Format, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidObject, id, err)
	}
	return m, nil
}

// List returns the identifiers of every record object under the prefix.
// Objects in nested "directories" or with another extension are skipped.
func (s *Source) List(ctx context.Context) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(s.cfg.Prefix),
	})

	ext := s.cfg.Format.Ext()
	var ids []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, wrapS3Error(err, "", ErrListFailed)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.cfg.Prefix)
			if strings.Contains(name, "/") || !strings.HasSuffix(name, ext) {
				continue
			}
			if id := strings.TrimSuffix(name, ext); id != "" {
				ids = append(ids, id)
			}
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Put encodes m and stores it as the record for id, replacing any existing
// object. Used to seed buckets; the cache itself never writes.
func (s *Source) Put(ctx context.Context, id string, m localedata.Mapping) error {
	data, err := localedata.EncodeFormat(s.cfg.Format, m)
	if err != nil {
		return err
	}

	contentType := "application/json"
	if s.cfg.Format == localedata.FormatYAML {
		contentType = "application/yaml"
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(s.key(id)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return wrapS3Error(err, id, ErrWriteFailed)
	}
	return nil
}

func (s *Source) key(id string) string {
	return s.cfg.Prefix + id + s.cfg.Format.Ext()
}

var _ localedata.Source = (*Source)(nil)
