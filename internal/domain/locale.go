package domain

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Locale identifies a language partition. Every content type keeps one
// physical table per locale.
type Locale string

const (
	LocaleEN Locale = "en"
	LocalePL Locale = "pl"
)

// DefaultLocale is used when a caller does not name a locale.
const DefaultLocale = LocaleEN

// SupportedLocales lists the partitions that exist in every backing store.
var SupportedLocales = []Locale{LocaleEN, LocalePL}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// Valid reports whether the locale is one of SupportedLocales.
func (l Locale) Valid() bool {
	for _, candidate := range SupportedLocales {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLocale normalizes a raw locale code. Unsupported codes are a caller
// error and surface as a ValidationError before any repository is reached.
func ParseLocale(raw string) (Locale, error) {
	locale := Locale(strings.ToLower(strings.TrimSpace(raw)))
	if locale.Valid() {
		return locale, nil
	}
	return "", UnsupportedLocale(raw)
}

// UnsupportedLocale reports raw as a locale the caller may not use.
func UnsupportedLocale(raw string) error {
	return NewValidationError("locale", validation.Errors{
		"locale": validation.NewError("cms.locale.unsupported", "unsupported locale "+quote(raw)),
	})
}

// ParseLocales converts a list of codes, failing on the first unsupported entry.
func ParseLocales(raw []string) ([]Locale, error) {
	out := make([]Locale, 0, len(raw))
	for _, code := range raw {
		locale, err := ParseLocale(code)
		if err != nil {
			return nil, err
		}
		out = append(out, locale)
	}
	return out, nil
}

func quote(value string) string {
	return `"` + value + `"`
}
