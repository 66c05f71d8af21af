package i18n

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iksnae/hiitbeep/internal"
)

// Params are the values substituted for {name} placeholders
type Params map[string]any

// TranslateFunc resolves a dotted key for one language
type TranslateFunc func(key string, params Params) string

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// Translate resolves a dotted key path in table. A missing segment or a
// value that is not a string logs a warning and yields the key itself.
func Translate(table Table, key string, params Params) string {
	var value any = table
	for _, segment := range strings.Split(key, ".") {
		var node map[string]any
		switch v := value.(type) {
		case map[string]any:
			node = v
		case Table:
			node = v
		default:
			internal.LogWarn("Translation key not found: %s", key)
			return key
		}
		var ok bool
		value, ok = node[segment]
		if !ok || value == nil {
			internal.LogWarn("Translation key not found: %s", key)
			return key
		}
	}

	text, ok := value.(string)
	if !ok {
		internal.LogWarn("Translation value is not a string: %s", key)
		return key
	}

	if params != nil {
		text = interpolate(text, params)
	}
	return text
}

// interpolate replaces {name} with params["name"]. Placeholders without a
// param, or whose param renders empty, are kept as written.
func interpolate(text string, params Params) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := params[name]
		if !ok || value == nil {
			return match
		}
		rendered := fmt.Sprint(value)
		if rendered == "" {
			return match
		}
		return rendered
	})
}
