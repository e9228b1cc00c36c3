package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to the missing-translation handler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a message key for a locale. Implementations return an
// error or an empty string when the key is unknown.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler controls the string returned when a translation
// cannot be resolved.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_, key string, _ []any, _ error) string {
	return key
}

// Catalog is a static Translator keyed by locale then message key.
type Catalog map[string]map[string]string

// Translate looks key up under locale, falling back to the base language tag
// ("en" for "en-US") before failing.
func (c Catalog) Translate(locale, key string, _ ...any) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("render: translation key is required")
	}
	for _, candidate := range localeCandidates(locale) {
		if messages, ok := c[candidate]; ok {
			if msg, ok := messages[key]; ok {
				return msg, nil
			}
		}
	}
	return "", errors.New("render: no translation for " + key)
}

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return []string{""}
	}
	out := []string{locale}
	if base, _, found := strings.Cut(locale, "-"); found && base != "" {
		out = append(out, base)
	}
	return out
}

// I18nConfig configures the template translation helpers.
type I18nConfig struct {
	// Locale is the default locale used when the template does not pass one.
	Locale string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned for missing translations.
	OnMissing MissingTranslationHandler
}

// I18nFuncs returns helpers suitable for injecting into an engine's global
// context. The main helper signature is:
//
//	translate(key, ...args) string
//
// plus a "current_locale" helper reporting the configured locale.
func I18nFuncs(t Translator, cfg I18nConfig) map[string]any {
	locale := strings.TrimSpace(cfg.Locale)

	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		translateName: func(key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			if t == nil {
				return onMissing(locale, key, params, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"current_locale": func() string {
			return locale
		},
	}
}
