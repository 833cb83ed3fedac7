package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environments accepted in the ENVIRONMENT variable.
const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	envVariable = "ENVIRONMENT"
)

// MustLoad is Load that logs the failure and exits the process.
func MustLoad[T any](dir string) T {
	cfg, err := Load[T](dir)
	if err != nil {
		slog.Error("[config]: " + err.Error())
		os.Exit(1)
	}
	return cfg
}

// Load reads <dir>/${ENVIRONMENT}.yaml into T.
//
// A .env file in the working directory is loaded first when present, so
// ${VAR} references inside the yaml can be filled from it. Values from
// `default` struct tags are applied to fields the file leaves empty, and the
// result is validated by `validate` tags.
func Load[T any](dir string) (T, error) {
	var cfg T

	if reflect.TypeOf(cfg) == nil || reflect.TypeOf(cfg).Kind() == reflect.Pointer {
		return cfg, errx.New("config type must be a struct, not a pointer")
	}

	_ = godotenv.Load()

	env := os.Getenv(envVariable)
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return cfg, errx.New(fmt.Sprintf(
			"%s env variable is not set or invalid. Choices are: production, staging, dev, local, test", envVariable,
		))
	}

	path := filepath.Join(dir, env+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	if err = Parse(data, &cfg); err != nil {
		return cfg, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	return cfg, nil
}

// Parse expands ${VAR} references in data, unmarshals it into cfg, applies
// defaults and validates the result. cfg must be a pointer to a struct.
func Parse(data []byte, cfg any) error {
	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errx.Wrap(err)
	}

	if err := defaults.Set(cfg); err != nil {
		return errx.Wrap(err)
	}

	return validateConfig(cfg)
}

func validateConfig(cfg any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errx.Wrap(err)
	}

	failed := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		tag := fieldErr.Tag()
		if fieldErr.Param() != "" {
			tag += "=" + fieldErr.Param()
		}
		failed = append(failed, fmt.Sprintf("%s: %s", fieldErr.Namespace(), tag))
	}

	return errx.New("invalid config fields -> " + strings.Join(failed, ",  "))
}
