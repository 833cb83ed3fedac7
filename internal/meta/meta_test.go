package meta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/filestorage/internal/meta"
)

func TestInjectMetaToContext(t *testing.T) {
	tests := []struct {
		name       string
		initialCtx context.Context
		data       map[meta.ContextKey]string
		key        meta.ContextKey
		expected   any
	}{
		{
			name:       "inject single value",
			initialCtx: t.Context(),
			data:       map[meta.ContextKey]string{meta.TraceID: "abc-123"},
			key:        meta.TraceID,
			expected:   "abc-123",
		},
		{
			name:       "skip empty values",
			initialCtx: t.Context(),
			data:       map[meta.ContextKey]string{meta.TraceID: "abc-123", meta.UserAgent: ""},
			key:        meta.UserAgent,
			expected:   nil,
		},
		{
			name:       "overwrite existing value",
			initialCtx: context.WithValue(t.Context(), meta.TraceID, "old"),
			data:       map[meta.ContextKey]string{meta.TraceID: "new"},
			key:        meta.TraceID,
			expected:   "new",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := meta.InjectMetaToContext(tc.initialCtx, tc.data)
			assert.Equal(t, tc.expected, ctx.Value(tc.key))
		})
	}
}

func TestExtractMetaFromContext(t *testing.T) {
	ctx := context.WithValue(t.Context(), meta.TraceID, "trace-1")
	ctx = context.WithValue(ctx, meta.ServiceName, "filestorage")
	ctx = context.WithValue(ctx, meta.IPAddress, 42) // not a string
	ctx = context.WithValue(ctx, meta.ContextKey("custom"), "ignored")

	assert.Equal(t, map[meta.ContextKey]string{
		meta.TraceID:     "trace-1",
		meta.ServiceName: "filestorage",
	}, meta.ExtractMetaFromContext(ctx))
}

func TestTr(t *testing.T) {
	meta.SetLanguageMap(map[string]map[string]string{
		"en": {"FILE_NOT_FOUND": "File not found"},
		"uk": {"FILE_NOT_FOUND": "Файл не знайдено"},
	}, "en")

	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{name: "default language", lang: "", expected: "File not found"},
		{name: "exact language", lang: "uk", expected: "Файл не знайдено"},
		{name: "accept-language header", lang: "uk-UA,uk;q=0.9,en;q=0.8", expected: "Файл не знайдено"},
		{name: "unknown language falls back", lang: "de", expected: "File not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, meta.Tr("FILE_NOT_FOUND", tc.lang))
		})
	}

	assert.Equal(t, "[untranslated]: NOPE", meta.Tr("NOPE", "en"))
}
