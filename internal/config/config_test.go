package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "reference-data"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ".", cfg.BaseDir)
	assert.Empty(t, cfg.TablePath)
	assert.Equal(t, SourceFile, cfg.TableSource)
	assert.False(t, cfg.StrictTableLoad)
	assert.Equal(t, "data/nutrition.csv", cfg.S3Key)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.False(t, cfg.S3PathStyle)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "nutrition-results", cfg.KafkaResultsTopic)
	assert.Equal(t, 5*time.Second, cfg.KafkaWriteTimeout)
	assert.False(t, cfg.PublishEnabled())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BASE_DIR", "/srv/nutrition")
	t.Setenv("TABLE_PATH", "/srv/nutrition/custom.csv")
	t.Setenv("TABLE_SOURCE", "S3")
	t.Setenv("TABLE_S3_BUCKET", testBucket)
	t.Setenv("TABLE_S3_KEY", "v2/nutrition.csv")
	t.Setenv("TABLE_S3_REGION", "eu-west-1")
	t.Setenv("TABLE_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("TABLE_S3_PATH_STYLE", "true")
	t.Setenv("STRICT_TABLE_LOAD", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_RESULTS_TOPIC", "custom-results")
	t.Setenv("KAFKA_WRITE_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/nutrition", cfg.BaseDir)
	assert.Equal(t, "/srv/nutrition/custom.csv", cfg.TablePath)
	assert.Equal(t, SourceS3, cfg.TableSource)
	assert.Equal(t, testBucket, cfg.S3Bucket)
	assert.Equal(t, "v2/nutrition.csv", cfg.S3Key)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
	assert.True(t, cfg.S3PathStyle)
	assert.True(t, cfg.StrictTableLoad)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-results", cfg.KafkaResultsTopic)
	assert.Equal(t, 2*time.Second, cfg.KafkaWriteTimeout)
	assert.True(t, cfg.PublishEnabled())
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidKafkaWriteTimeout(t *testing.T) {
	t.Setenv("KAFKA_WRITE_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_WRITE_TIMEOUT")
}

func TestLoad_InvalidStrictTableLoad(t *testing.T) {
	t.Setenv("STRICT_TABLE_LOAD", "maybe")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRICT_TABLE_LOAD")
}

func TestLoad_InvalidTableSource(t *testing.T) {
	t.Setenv("TABLE_SOURCE", "ftp")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TABLE_SOURCE")
}

func TestLoad_S3SourceWithoutBucket(t *testing.T) {
	t.Setenv("TABLE_SOURCE", "s3")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TABLE_S3_BUCKET")
}
