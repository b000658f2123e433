package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

const fallbackLang = "en"

// Translator holds every embedded locale table and formats strings per
// language. Unknown languages fall back to English; unknown keys come back
// verbatim so a missing entry is visible instead of silent.
type Translator struct {
	tables map[string]map[string]string
}

func NewTranslator(fsys fs.FS) (*Translator, error) {
	entries, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	tables := make(map[string]map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read translation file %s: %w", name, err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse translation file %s: %w", name, err)
		}
		tables[strings.TrimSuffix(name, ".yaml")] = table
	}
	if _, ok := tables[fallbackLang]; !ok {
		return nil, fmt.Errorf("fallback locale %q missing", fallbackLang)
	}
	return &Translator{tables: tables}, nil
}

// Languages lists the loaded locale codes in stable order.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.tables))
	for lang := range t.tables {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func (t *Translator) Has(lang string) bool {
	_, ok := t.tables[lang]
	return ok
}

// T translates key for lang, formatting with args when given.
func (t *Translator) T(lang, key string, args ...interface{}) string {
	table, ok := t.tables[lang]
	if !ok {
		table = t.tables[fallbackLang]
	}
	format, ok := table[key]
	if !ok {
		if format, ok = t.tables[fallbackLang][key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}
