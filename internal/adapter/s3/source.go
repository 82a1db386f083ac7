package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Config locates the reference file in an S3-compatible bucket (AWS S3 or MinIO).
type Config struct {
	Region    string
	Bucket    string
	Key       string
	Endpoint  string // optional; custom endpoint such as MinIO
	PathStyle bool
}

// Source reads the reference file from a single S3 object.
// It implements table.Source.
type Source struct {
	client *s3.Client
	bucket string
	key    string
}

// New creates a Source using the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	if cfg.Key == "" {
		return nil, errors.New("s3 key required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewFromClient(client, cfg.Bucket, cfg.Key), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *s3.Client, bucket, key string) *Source {
	return &Source{client: client, bucket: bucket, key: key}
}

// Open fetches the object body. A missing object is reported as fs.ErrNotExist
// so callers treat it like a missing local file.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", s, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("get %s: %w", s, err)
	}
	return out.Body, nil
}

func (s *Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
