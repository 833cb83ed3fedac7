package miniostore

// Config defines the configuration options for the MinIO client.
type Config struct {
	// Endpoint is the MinIO server endpoint (e.g., "localhost:9000").
	Endpoint string `yaml:"endpoint" validate:"required"`

	AccessKey string `yaml:"access_key" validate:"required"`
	SecretKey string `yaml:"secret_key" validate:"required" mask:"true"`

	// Bucket holds every blob; directories become key prefixes.
	Bucket string `yaml:"bucket" validate:"required"`

	// BucketMustExist fails startup when Bucket is missing instead of creating it.
	BucketMustExist bool `yaml:"bucket_must_exist"`

	// Region skips the bucket location lookup when set.
	Region string `yaml:"region" default:"us-east-1"`

	UseSSL bool `yaml:"use_ssl" default:"false"`
}
