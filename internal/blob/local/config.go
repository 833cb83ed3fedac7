package local

// Config defines the on-disk blob store settings.
type Config struct {
	// DataDir is the root of the storage tree. It is created when missing.
	DataDir string `yaml:"data_dir" default:"data" validate:"required"`
}
