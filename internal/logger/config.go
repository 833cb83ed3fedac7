package logger

import (
	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings.
const (
	EncodingJSON   = "json"
	EncodingPretty = "pretty"
)

const levelDebug = "debug"

// Config defines configuration options for the logger.
type Config struct {
	// Level is the minimum level emitted: debug, info, warn or error.
	Level string `yaml:"level" validate:"oneof=debug info warn error" default:"debug"`

	// Encoding is json for log shippers or pretty for a terminal.
	Encoding string `yaml:"encoding" validate:"oneof=json pretty" default:"pretty"`

	// Disable swaps in a no-op logger.
	Disable bool `yaml:"disable" default:"false"`
}

func (c Config) level() (zap.AtomicLevel, error) {
	lvl, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return lvl, errx.Wrap(err, errx.WithDetails(errx.D{"level": c.Level}))
	}
	return lvl, nil
}

func (c Config) encoder() zapcore.Encoder {
	enc := encoderConfig()
	if c.Encoding == EncodingPretty {
		return newPrettyEncoder(enc)
	}
	return zapcore.NewJSONEncoder(enc)
}

// entryKeys names the fields zap fills from the entry itself.
//
//nolint:gochecknoglobals // read-only
var entryKeys = zapcore.EncoderConfig{
	MessageKey: "msg",
	LevelKey:   "level",
	NameKey:    "logger",
	TimeKey:    "time",
	CallerKey:  "caller",
}

func encoderConfig() zapcore.EncoderConfig {
	enc := entryKeys
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder
	enc.EncodeName = zapcore.FullNameEncoder
	return enc
}
