package logger

import (
	"encoding/json"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// prettyEncoder prints the console line with a colored level and the
// structured fields as indented JSON below it.
type prettyEncoder struct {
	zapcore.Encoder
	json zapcore.Encoder
	pool buffer.Pool
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &prettyEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		json:    zapcore.NewJSONEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{
		Encoder: e.Encoder.Clone(),
		json:    e.json.Clone(),
		pool:    e.pool,
	}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := e.Encoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}
	out := colorizeLevel(strings.TrimRight(line.String(), "\n"), entry.Level)
	line.Free()

	jsonBuf, err := e.json.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer jsonBuf.Free()

	var m map[string]any
	if err = json.Unmarshal(jsonBuf.Bytes(), &m); err == nil {
		for _, k := range []string{entryKeys.MessageKey, entryKeys.LevelKey, entryKeys.TimeKey, entryKeys.NameKey, entryKeys.CallerKey} {
			delete(m, k)
		}
		if len(m) > 0 {
			if pretty, mErr := json.MarshalIndent(m, "", "  "); mErr == nil {
				out += "\n" + string(pretty)
			}
		}
	}

	buf := e.pool.Get()
	buf.AppendString(out)
	buf.AppendString("\n")
	return buf, nil
}

func colorizeLevel(line string, level zapcore.Level) string {
	var attrs []color.Attribute
	switch level {
	case zapcore.DebugLevel:
		attrs = []color.Attribute{color.FgCyan}
	case zapcore.InfoLevel:
		attrs = []color.Attribute{color.FgGreen}
	case zapcore.WarnLevel:
		attrs = []color.Attribute{color.FgYellow}
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		attrs = []color.Attribute{color.FgRed, color.Bold}
	default:
		return line
	}
	lvl := level.CapitalString()
	return strings.Replace(line, lvl, color.New(attrs...).Sprint(lvl), 1)
}
