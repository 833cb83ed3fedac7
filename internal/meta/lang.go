package meta

import (
	"context"
	"strings"
	"sync"
)

var (
	langMapOnce sync.Once                    //nolint:gochecknoglobals // ensures SetLanguageMap is called once
	langMap     map[string]map[string]string //nolint:gochecknoglobals // avoids threading translations through every layer
	defaultLang string                       //nolint:gochecknoglobals // see langMap
)

// SetLanguageMap sets the translations (lang -> text -> translation) and the
// default language. Only the first call has an effect.
func SetLanguageMap(m map[string]map[string]string, defLang string) {
	langMapOnce.Do(func() {
		langMap = m
		defaultLang = defLang
	})
}

// Tr returns the translated text for the given language.
// Falls back to the default language if the requested language is not found.
// lang may be a raw Accept-Language header value.
func Tr(text, lang string) string {
	lang = primaryLang(lang)
	if lang == "" {
		lang = defaultLang
	}

	if m, ok := langMap[lang]; ok {
		return getTranslationOrUntranslated(text, m)
	}

	return getTranslationOrUntranslated(text, langMap[defaultLang])
}

// TrCtx returns the translated text using the language from the request context.
func TrCtx(ctx context.Context, text string) string {
	return Tr(text, Find(ctx, AcceptLanguage))
}

func getTranslationOrUntranslated(text string, m map[string]string) string {
	res := m[text]

	if res == "" {
		return "[untranslated]: " + text
	}

	return res
}

// primaryLang reduces "uk-UA,uk;q=0.9,en;q=0.8" to "uk".
func primaryLang(header string) string {
	tag, _, _ := strings.Cut(header, ",")
	tag, _, _ = strings.Cut(tag, ";")
	tag, _, _ = strings.Cut(tag, "-")
	return strings.ToLower(strings.TrimSpace(tag))
}
