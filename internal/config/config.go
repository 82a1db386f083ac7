package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Reference table sources.
const (
	SourceFile = "file"
	SourceS3   = "s3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Reference table location.
	BaseDir         string
	TablePath       string
	TableSource     string
	StrictTableLoad bool

	// S3 source, used when TableSource is "s3".
	S3Bucket    string
	S3Key       string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// Result publishing; disabled when KafkaBrokers is empty.
	KafkaBrokers      []string
	KafkaResultsTopic string
	KafkaWriteTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	writeTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("KAFKA_WRITE_TIMEOUT", "5s"))
	if err != nil || writeTimeout <= 0 {
		return nil, errors.New("invalid KAFKA_WRITE_TIMEOUT")
	}

	strict, err := parseBool("STRICT_TABLE_LOAD", false)
	if err != nil {
		return nil, err
	}
	pathStyle, err := parseBool("TABLE_S3_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	baseDir := sharedcfg.EnvOrDefault("BASE_DIR", ".")

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		BaseDir:         baseDir,
		TablePath:       os.Getenv("TABLE_PATH"),
		TableSource:     strings.ToLower(sharedcfg.EnvOrDefault("TABLE_SOURCE", SourceFile)),
		StrictTableLoad: strict,

		S3Bucket:    os.Getenv("TABLE_S3_BUCKET"),
		S3Key:       sharedcfg.EnvOrDefault("TABLE_S3_KEY", "data/nutrition.csv"),
		S3Region:    sharedcfg.EnvOrDefault("TABLE_S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("TABLE_S3_ENDPOINT"),
		S3PathStyle: pathStyle,

		KafkaBrokers:      parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaResultsTopic: sharedcfg.EnvOrDefault("KAFKA_RESULTS_TOPIC", "nutrition-results"),
		KafkaWriteTimeout: writeTimeout,
	}

	switch cfg.TableSource {
	case SourceFile:
	case SourceS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("TABLE_SOURCE is s3 but TABLE_S3_BUCKET is not set")
		}
	default:
		return nil, fmt.Errorf("invalid TABLE_SOURCE %q (want %s or %s)", cfg.TableSource, SourceFile, SourceS3)
	}

	return cfg, nil
}

// PublishEnabled reports whether computed results are sent to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseBool(key string, def bool) (bool, error) {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return def, nil
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s", key)
}

func parseBrokers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return sharedcfg.ParseBrokers(s)
}
