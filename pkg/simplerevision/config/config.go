package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-revision/pkg/simplerevision"
	"github.com/tendant/simple-revision/pkg/simplerevision/repo/memory"
	repopg "github.com/tendant/simple-revision/pkg/simplerevision/repo/postgres"
	fsstorage "github.com/tendant/simple-revision/pkg/simplerevision/storage/fs"
	memorystorage "github.com/tendant/simple-revision/pkg/simplerevision/storage/memory"
	s3storage "github.com/tendant/simple-revision/pkg/simplerevision/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on
// top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		Storage: StorageConfig{
			Type: "memory",
		},
	}
}

// ServerConfig represents server configuration for the simple-revision
// service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage configuration
	Storage StorageConfig
}

// StorageConfig represents configuration for the blob store backend
type StorageConfig struct {
	Type string // "memory", "fs", "s3"

	// Filesystem options
	BaseDir string

	// S3 options
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	CreateBucket    bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.Storage.Type {
	case "memory":
	case "fs":
		if c.Storage.BaseDir == "" {
			return errors.New("storage base_dir is required when using fs")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required when using s3")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	return nil
}

// BuildRepository creates a Repository from the server configuration
func (c *ServerConfig) BuildRepository(ctx context.Context) (simplerevision.Repository, error) {
	switch c.DatabaseType {
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return memory.New(), nil
	}
}

// BuildBlobStore creates a BlobStore from the server configuration
func (c *ServerConfig) BuildBlobStore() (simplerevision.BlobStore, error) {
	switch c.Storage.Type {
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.Storage.BaseDir})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.Storage.Region,
			Bucket:                 c.Storage.Bucket,
			AccessKeyID:            c.Storage.AccessKeyID,
			SecretAccessKey:        c.Storage.SecretAccessKey,
			Endpoint:               c.Storage.Endpoint,
			UsePathStyle:           c.Storage.UsePathStyle,
			CreateBucketIfNotExist: c.Storage.CreateBucket,
		})
	default:
		return memorystorage.New(), nil
	}
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(ctx context.Context) (simplerevision.Service, error) {
	repo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, err
	}

	store, err := c.BuildBlobStore()
	if err != nil {
		return nil, err
	}

	return simplerevision.New(
		simplerevision.WithRepository(repo),
		simplerevision.WithBlobStore(store),
	)
}
