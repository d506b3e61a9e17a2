// Package i18n is a pure (locale, key) -> string lookup over embedded
// translation tables, with English as the fallback.
package i18n

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

//go:embed locales
var localeFS embed.FS

const fallback = "en"

type Table struct {
	locales map[string]map[string]string
}

func Load() (*Table, error) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, errors.Wrap(err, "i18n.read_dir")
	}

	t := Table{locales: map[string]map[string]string{}}
	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), ".json")

		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, errors.Wrap(err, "i18n.read "+locale)
		}

		msgs := map[string]string{}
		err = json.Unmarshal(raw, &msgs)
		if err != nil {
			return nil, errors.Wrap(err, "i18n.parse "+locale)
		}
		t.locales[locale] = msgs
	}

	if _, ok := t.locales[fallback]; !ok {
		return nil, errors.New("i18n: missing fallback locale " + fallback)
	}
	return &t, nil
}

// Locales lists the available locale codes.
func (t *Table) Locales() []string {
	codes := make([]string, 0, len(t.locales))
	for code := range t.locales {
		codes = append(codes, code)
	}
	return codes
}

// Has reports whether a locale is available.
func (t *Table) Has(locale string) bool {
	_, ok := t.locales[locale]
	return ok
}

// T resolves a key in the given locale, falling back to English, then to the
// key itself so a missing translation never blanks out a label.
func (t *Table) T(locale, key string) string {
	if msgs, ok := t.locales[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.locales[fallback][key]; ok {
		return msg
	}
	return key
}

// All returns the full table for a locale, with English entries filling any
// gaps. Used to hand a complete dictionary to the form client.
func (t *Table) All(locale string) map[string]string {
	merged := map[string]string{}
	for key, msg := range t.locales[fallback] {
		merged[key] = msg
	}
	if msgs, ok := t.locales[locale]; ok {
		for key, msg := range msgs {
			merged[key] = msg
		}
	}
	return merged
}
