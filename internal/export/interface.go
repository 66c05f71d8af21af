package export

import (
	"fmt"
	"io"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(snapshot *internal.Snapshot, w io.Writer) error
	Extension() string
}

// Option configures an exporter
type Option func(*options)

type options struct {
	translate i18n.TranslateFunc
}

// WithTranslator localizes human-readable formats
func WithTranslator(tr i18n.TranslateFunc) Option {
	return func(o *options) {
		o.translate = tr
	}
}

// NewExporter creates a new exporter based on format
func NewExporter(format string, opts ...Option) (Exporter, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.translate == nil {
		table := i18n.Default().Table("en")
		o.translate = func(key string, params i18n.Params) string {
			return i18n.Translate(table, key, params)
		}
	}

	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{translate: o.translate}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, jsonl, md)", format)
	}
}
