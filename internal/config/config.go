package config

import (
	"github.com/rise-and-shine/filestorage/internal/blob/local"
	"github.com/rise-and-shine/filestorage/internal/blob/miniostore"
	"github.com/rise-and-shine/filestorage/internal/http/server"
	"github.com/rise-and-shine/filestorage/internal/logger"
	"github.com/rise-and-shine/filestorage/internal/pg"
	"github.com/rise-and-shine/filestorage/internal/tracing"
)

// Blob drivers.
const (
	BlobLocal = "local"
	BlobMinio = "minio"
)

// Metadata drivers.
const (
	MetadataPostgres = "postgres"
	MetadataMemory   = "memory"
)

// Config is the application configuration read from config/${ENVIRONMENT}.yaml.
type Config struct {
	Service    Service        `yaml:"service"`
	Logger     logger.Config  `yaml:"logger"`
	Tracing    tracing.Config `yaml:"tracing"`
	HTTPServer server.Config  `yaml:"http_server"`
	Blob       BlobConfig     `yaml:"blob"`
	Metadata   MetadataConfig `yaml:"metadata"`
}

type Service struct {
	Name    string `yaml:"name"    default:"filestorage"`
	Version string `yaml:"version" default:"dev"`
}

// BlobConfig selects where file contents live.
type BlobConfig struct {
	Driver string `yaml:"driver" default:"local" validate:"oneof=local minio"`

	Local local.Config       `yaml:"local"`
	Minio *miniostore.Config `yaml:"minio" validate:"required_if=Driver minio"`
}

// MetadataConfig selects where file records live. The memory driver keeps
// records for the lifetime of the process only.
type MetadataConfig struct {
	Driver string `yaml:"driver" default:"postgres" validate:"oneof=postgres memory"`

	Postgres *pg.Config `yaml:"postgres" validate:"required_if=Driver postgres"`
}
