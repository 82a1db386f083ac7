package s3_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3source "github.com/couchcryptid/nutrition-api/internal/adapter/s3"
	"github.com/couchcryptid/nutrition-api/internal/adapter/table"
	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBucket = "reference-data"
	testKey    = "data/nutrition.csv"
	testBody   = "ID;name;calories;iron\n1;Cornstarch;381;0.47 mg\n"
)

// fakeS3 serves GetObject for path-style requests: /<bucket>/<key>.
type fakeS3 struct {
	objects map[string][]byte
	status  int // forces a status for every request when non-zero
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	if f.status != 0 {
		return xmlResponse(f.status, "<Error><Code>AccessDenied</Code><Message>denied</Message></Error>"), nil
	}
	path := strings.TrimPrefix(req.URL.Path, "/")
	body, ok := f.objects[path]
	if req.Method != http.MethodGet || !ok {
		return xmlResponse(http.StatusNotFound, "<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>"), nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header: http.Header{
			"Content-Length": {fmt.Sprintf("%d", len(body))},
			"Content-Type":   {"text/csv"},
			"ETag":           {"\"etag\""},
		},
		ContentLength: int64(len(body)),
	}, nil
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Body:          io.NopCloser(strings.NewReader(body)),
		Header:        http.Header{"Content-Type": {"application/xml"}},
		ContentLength: int64(len(body)),
	}
}

func newTestSource(t *testing.T, rt http.RoundTripper, key string) *s3source.Source {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
	return s3source.NewFromClient(client, testBucket, key)
}

func TestSource_Open(t *testing.T) {
	rt := &fakeS3{objects: map[string][]byte{testBucket + "/" + testKey: []byte(testBody)}}
	src := newTestSource(t, rt, testKey)

	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, testBody, string(data))
	assert.Equal(t, "s3://reference-data/data/nutrition.csv", src.String())
}

func TestSource_OpenMissingObject(t *testing.T) {
	src := newTestSource(t, &fakeS3{objects: map[string][]byte{}}, testKey)

	_, err := src.Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSource_OpenAccessDenied(t *testing.T) {
	src := newTestSource(t, &fakeS3{status: http.StatusForbidden}, testKey)

	_, err := src.Open(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "s3://reference-data/data/nutrition.csv")
}

func TestSource_FeedsLoader(t *testing.T) {
	rt := &fakeS3{objects: map[string][]byte{testBucket + "/" + testKey: []byte(testBody)}}
	loader := table.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tbl, err := loader.Load(context.Background(), newTestSource(t, rt, testKey))
	require.NoError(t, err)

	result, err := domain.Calculate(tbl, "Cornstarch", 150)
	require.NoError(t, err)
	assert.Equal(t, 571.5, result.Calories)
	assert.Equal(t, 0.000705, result.Iron)
}

func TestSource_MissingObjectIsDegraded(t *testing.T) {
	loader := table.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tbl, err := loader.Load(context.Background(), newTestSource(t, &fakeS3{objects: map[string][]byte{}}, "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Zero(t, tbl.Len())
}

func TestNew_Validation(t *testing.T) {
	_, err := s3source.New(context.Background(), s3source.Config{Key: testKey})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")

	_, err = s3source.New(context.Background(), s3source.Config{Bucket: testBucket})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key")
}
