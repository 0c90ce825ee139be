package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"jobprep-backend/internal/shared/storage/object"
)

// API is the part of the S3 client the store calls.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options locates the exports inside a bucket. An empty KMSKeyID selects SSE-S3.
type Options struct {
	Region   string
	Bucket   string
	Prefix   string
	KMSKeyID string
}

// Store keeps rendered reports in S3.
type Store struct {
	api  API
	opts Options
}

// New builds a client from the default AWS credential chain.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, errors.New("S3_BUCKET is required for the s3 export store")
	}
	var loaders []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(s3.NewFromConfig(awsCfg), opts), nil
}

func NewWithClient(api API, opts Options) *Store {
	opts.Prefix = strings.Trim(strings.TrimSpace(opts.Prefix), "/")
	opts.KMSKeyID = strings.TrimSpace(opts.KMSKeyID)
	return &Store{api: api, opts: opts}
}

func (s *Store) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.opts.Prefix == "" {
		return key
	}
	return path.Join(s.opts.Prefix, key)
}

// Put uploads the whole report in one request; reports are small enough to buffer.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read export body: %w", err)
	}
	k := s.objectKey(key)
	in := &s3.PutObjectInput{
		Bucket:             aws.String(s.opts.Bucket),
		Key:                aws.String(k),
		Body:               bytes.NewReader(data),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(k))),
	}
	if s.opts.KMSKeyID == "" {
		in.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	} else {
		in.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		in.SSEKMSKeyId = aws.String(s.opts.KMSKeyID)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return 0, fmt.Errorf("s3 put %s/%s: %w", s.opts.Bucket, k, err)
	}
	return int64(len(data)), nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k := s.objectKey(key)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(k),
	})
	var missing *s3types.NoSuchKey
	switch {
	case errors.As(err, &missing):
		return nil, object.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("s3 get %s/%s: %w", s.opts.Bucket, k, err)
	}
	return out.Body, nil
}

var _ object.ObjectStore = (*Store)(nil)
