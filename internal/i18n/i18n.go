// Package i18n holds the English and Traditional Chinese UI strings.
package i18n

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/wordwise/internal/store"
)

// Lang is a UI language.
type Lang string

const (
	EN Lang = "EN"
	ZH Lang = "ZH"
)

// Default is the language used before the parent picks one.
const Default = ZH

// Parse accepts "en"/"zh" in any case.
func Parse(s string) (Lang, error) {
	switch Lang(strings.ToUpper(strings.TrimSpace(s))) {
	case EN:
		return EN, nil
	case ZH:
		return ZH, nil
	}
	return "", fmt.Errorf("unknown language %q (want en or zh)", s)
}

// Toggle returns the other language.
func (l Lang) Toggle() Lang {
	if l == EN {
		return ZH
	}
	return EN
}

// T returns the message for key, falling back to English and then to the
// key itself.
func T(lang Lang, key Key) string {
	if m, ok := catalogue[lang][key]; ok {
		return m
	}
	if m, ok := catalogue[EN][key]; ok {
		return m
	}
	return string(key)
}

// Tf formats the message for key with args.
func Tf(lang Lang, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// Load reads the saved language, returning Default when none is saved.
func Load(ctx context.Context, settings store.SettingsRepo) (Lang, error) {
	v, ok, err := settings.Get(ctx, store.SettingLang)
	if err != nil {
		return Default, fmt.Errorf("load language: %w", err)
	}
	if !ok {
		return Default, nil
	}
	lang, err := Parse(v)
	if err != nil {
		return Default, nil
	}
	return lang, nil
}

// Save persists lang.
func Save(ctx context.Context, settings store.SettingsRepo, lang Lang) error {
	if err := settings.Set(ctx, store.SettingLang, string(lang)); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}
