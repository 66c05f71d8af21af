package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is a nested translation table for one language
type Table map[string]any

// Bundle holds the translation tables of every language
type Bundle struct {
	tables map[string]Table
}

//go:embed locales/*.yaml
var embeddedLocaleFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the embedded translation bundle
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the tables embedded in this package
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocaleFS)
}

// LoadFromFS loads locales/<code>.yaml files from fsys. Every supported
// language must have a table.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale tables: %w", err)
	}
	sort.Strings(paths)

	bundle := &Bundle{tables: map[string]Table{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale table %s: %w", p, err)
		}
		// Nested mappings must decode as map[string]any for lookup
		var table map[string]any
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse locale table %s: %w", p, err)
		}
		if len(table) == 0 {
			return nil, fmt.Errorf("locale table %s is empty", p)
		}
		code := strings.TrimSuffix(path.Base(p), path.Ext(p))
		bundle.tables[code] = Table(table)
	}

	for _, lang := range languages {
		if _, ok := bundle.tables[lang.Code]; !ok {
			return nil, fmt.Errorf("missing locale table for %s", lang.Code)
		}
	}
	return bundle, nil
}

// Table returns the table for code, falling back to the default language
func (b *Bundle) Table(code string) Table {
	if table, ok := b.tables[code]; ok {
		return table
	}
	return b.tables[DefaultLanguage]
}

// Codes returns the language codes with a table
func (b *Bundle) Codes() []string {
	out := make([]string, 0, len(b.tables))
	for code := range b.tables {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return bundle
}
