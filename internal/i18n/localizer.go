package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/state"
)

const (
	// PreferenceKey stores the chosen language code
	PreferenceKey = "hiitbeep-language"
	// DefaultLanguage is used when nothing else resolves
	DefaultLanguage = "es"
)

// Language describes a supported language
type Language struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

var languages = []Language{
	{Code: "es", Name: "Español", Flag: "🇪🇸"},
	{Code: "en", Name: "English", Flag: "🇺🇸"},
}

// Languages returns the supported languages
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// IsSupported reports whether code is a supported language code
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Lookup returns the supported language with code
func Lookup(code string) (Language, bool) {
	for _, lang := range languages {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

// Localizer holds the current language and translates for it. The
// preference is persisted in a KeyValueStore when one is given.
type Localizer struct {
	kv         internal.KeyValueStore
	bundle     *Bundle
	current    *state.Observable[string]
	translator *state.Derived[TranslateFunc]
}

// New creates a Localizer using the embedded tables. The initial language
// is the stored preference, then systemLanguage (a POSIX locale such as
// en_US.UTF-8 or a BCP 47 tag), then DefaultLanguage.
func New(kv internal.KeyValueStore, systemLanguage string) *Localizer {
	return NewWithBundle(kv, systemLanguage, Default())
}

// NewWithBundle is New with explicit tables
func NewWithBundle(kv internal.KeyValueStore, systemLanguage string, bundle *Bundle) *Localizer {
	l := &Localizer{
		kv:      kv,
		bundle:  bundle,
		current: state.NewObservable(initialLanguage(kv, systemLanguage)),
	}
	l.translator = state.Derive[string](l.current, func(code string) TranslateFunc {
		table := bundle.Table(code)
		return func(key string, params Params) string {
			return Translate(table, key, params)
		}
	})
	return l
}

func initialLanguage(kv internal.KeyValueStore, systemLanguage string) string {
	if kv != nil {
		saved, ok, err := kv.Get(PreferenceKey)
		if err != nil {
			internal.LogWarn("Failed to read language preference: %v", err)
		} else if ok && IsSupported(saved) {
			return saved
		}
	}
	if code := baseLanguage(systemLanguage); IsSupported(code) {
		return code
	}
	return DefaultLanguage
}

// baseLanguage extracts the base language subtag from a POSIX locale or
// BCP 47 tag, or "" when it can't be parsed
func baseLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		internal.LogDebug("Ignoring system language %q: %v", locale, err)
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// Language returns the current language code
func (l *Localizer) Language() string {
	return l.current.Get()
}

// Current returns the current language
func (l *Localizer) Current() Language {
	lang, ok := Lookup(l.current.Get())
	if !ok {
		lang, _ = Lookup(DefaultLanguage)
	}
	return lang
}

// SetLanguage switches to code and persists it. Unsupported codes are
// ignored and reported with false.
func (l *Localizer) SetLanguage(code string) bool {
	if !IsSupported(code) {
		return false
	}
	l.current.Set(code)
	if l.kv != nil {
		if err := l.kv.Set(PreferenceKey, code); err != nil {
			internal.LogWarn("Failed to save language preference: %v", err)
		}
	}
	return true
}

// Subscribe watches the current language code
func (l *Localizer) Subscribe(fn func(code string)) func() {
	return l.current.Subscribe(fn)
}

// Translator returns a translate function rebound on every language change
func (l *Localizer) Translator() *state.Derived[TranslateFunc] {
	return l.translator
}

// T translates key for the current language
func (l *Localizer) T(key string) string {
	return l.translator.Get()(key, nil)
}

// Tf translates key for the current language with parameters
func (l *Localizer) Tf(key string, params Params) string {
	return l.translator.Get()(key, params)
}

// Error renders err in the current language when it carries a message
// key, and as err.Error() otherwise
func (l *Localizer) Error(err error) string {
	var loc internal.Localizable
	if errors.As(err, &loc) {
		return l.Tf(loc.MessageKey(), loc.MessageParams())
	}
	return err.Error()
}
