package i18n

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/testutil"
)

const testEN = `
greeting: "Hello {name}"
nested:
  deep:
    leaf: "leaf"
  count: 3
twice: "{a} and {a} and {b}"
`

const testES = `
greeting: "Hola {name}"
nested:
  deep:
    leaf: "hoja"
`

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	bundle, err := LoadFromFS(fstest.MapFS{
		"locales/en.yaml": {Data: []byte(testEN)},
		"locales/es.yaml": {Data: []byte(testES)},
	})
	require.NoError(t, err)
	return bundle
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := internal.SetLogOutput(&buf)
	t.Cleanup(func() { internal.SetLogOutput(prev) })
	return &buf
}

func newKV(t *testing.T) *internal.SQLiteStore {
	t.Helper()
	return internal.NewSQLiteStore(testutil.CreateInMemoryDB(t))
}

func TestLoadFromFS_MissingLanguage(t *testing.T) {
	_, err := LoadFromFS(fstest.MapFS{
		"locales/en.yaml": {Data: []byte(testEN)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "es")
}

func TestLoadFromFS_InvalidYAML(t *testing.T) {
	_, err := LoadFromFS(fstest.MapFS{
		"locales/en.yaml": {Data: []byte("greeting: [unclosed")},
		"locales/es.yaml": {Data: []byte(testES)},
	})
	assert.Error(t, err)
}

func TestEmbeddedTablesHaveSameKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	require.NoError(t, err)

	en := flatten(bundle.Table("en"), "")
	es := flatten(bundle.Table("es"), "")
	assert.ElementsMatch(t, keysOf(en), keysOf(es))
	assert.Equal(t, []string{"en", "es"}, bundle.Codes())
}

func flatten(node map[string]any, prefix string) map[string]string {
	out := map[string]string{}
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			for fk, fv := range flatten(val, key) {
				out[fk] = fv
			}
		case string:
			out[key] = val
		}
	}
	return out
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestTranslate(t *testing.T) {
	table := testBundle(t).Table("en")

	tests := []struct {
		name   string
		key    string
		params Params
		want   string
		warns  bool
	}{
		{name: "nested leaf", key: "nested.deep.leaf", want: "leaf"},
		{name: "interpolation", key: "greeting", params: Params{"name": "Ana"}, want: "Hello Ana"},
		{name: "no params keeps placeholder", key: "greeting", want: "Hello {name}"},
		{name: "unmatched placeholder kept", key: "greeting", params: Params{"other": 1}, want: "Hello {name}"},
		{name: "empty param keeps placeholder", key: "greeting", params: Params{"name": ""}, want: "Hello {name}"},
		{name: "repeated placeholders", key: "twice", params: Params{"a": 1, "b": true}, want: "1 and 1 and true"},
		{name: "missing segment", key: "nested.nope.leaf", want: "nested.nope.leaf", warns: true},
		{name: "missing top level", key: "absent", want: "absent", warns: true},
		{name: "non-string leaf", key: "nested.count", want: "nested.count", warns: true},
		{name: "branch not leaf", key: "nested.deep", want: "nested.deep", warns: true},
		{name: "descend through leaf", key: "greeting.more", want: "greeting.more", warns: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLog(t)
			assert.Equal(t, tt.want, Translate(table, tt.key, tt.params))
			if tt.warns {
				assert.Contains(t, logs.String(), "[WARN]")
				assert.Contains(t, logs.String(), tt.key)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestTranslate_EmbeddedNestedKeys(t *testing.T) {
	logs := captureLog(t)
	en := Default().Table("en")

	_, isMap := en["routines"].(map[string]any)
	assert.True(t, isMap, "nested tables decode as plain maps")
	assert.Equal(t, "HIITBeep", Translate(en, "app.name", nil))
	assert.Equal(t, "Saved routines", Translate(en, "routines.title", nil))
	assert.Empty(t, logs.String())
}

func TestTranslate_TableNodes(t *testing.T) {
	table := Table{"outer": Table{"inner": "value"}}
	assert.Equal(t, "value", Translate(table, "outer.inner", nil))
}

func TestBaseLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en_US.UTF-8", "en"},
		{"es_ES@euro", "es"},
		{"en-GB", "en"},
		{"fr_FR.UTF-8", "fr"},
		{"C", ""},
		{"POSIX", ""},
		{"", ""},
		{"not a locale!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, baseLanguage(tt.locale))
		})
	}
}

func TestNew_InitialLanguage(t *testing.T) {
	t.Run("default when nothing resolves", func(t *testing.T) {
		l := NewWithBundle(nil, "fr_FR.UTF-8", testBundle(t))
		assert.Equal(t, DefaultLanguage, l.Language())
	})

	t.Run("system language when supported", func(t *testing.T) {
		l := NewWithBundle(nil, "en_US.UTF-8", testBundle(t))
		assert.Equal(t, "en", l.Language())
	})

	t.Run("stored preference wins", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(PreferenceKey, "es"))
		l := NewWithBundle(kv, "en_US.UTF-8", testBundle(t))
		assert.Equal(t, "es", l.Language())
	})

	t.Run("unsupported stored preference ignored", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(PreferenceKey, "de"))
		l := NewWithBundle(kv, "en", testBundle(t))
		assert.Equal(t, "en", l.Language())
	})
}

func TestSetLanguage(t *testing.T) {
	kv := newKV(t)
	l := NewWithBundle(kv, "", testBundle(t))
	assert.Equal(t, "Hola Ana", l.Tf("greeting", Params{"name": "Ana"}))

	assert.True(t, l.SetLanguage("en"))
	assert.Equal(t, "en", l.Language())
	assert.Equal(t, "Hello Ana", l.Tf("greeting", Params{"name": "Ana"}))

	saved, ok, err := kv.Get(PreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "en", saved)

	// restored by a new localizer on the same store
	again := NewWithBundle(kv, "es_ES", testBundle(t))
	assert.Equal(t, "en", again.Language())
}

func TestSetLanguage_UnsupportedIgnored(t *testing.T) {
	kv := newKV(t)
	l := NewWithBundle(kv, "", testBundle(t))

	assert.False(t, l.SetLanguage("fr"))
	assert.Equal(t, "es", l.Language())

	_, ok, err := kv.Get(PreferenceKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTranslatorRecomputesOnLanguageChange(t *testing.T) {
	l := NewWithBundle(nil, "", testBundle(t))

	var seen []string
	unsubscribe := l.Translator().Subscribe(func(tr TranslateFunc) {
		seen = append(seen, tr("nested.deep.leaf", nil))
	})
	defer unsubscribe()

	l.SetLanguage("en")
	l.SetLanguage("es")

	assert.Equal(t, []string{"hoja", "leaf", "hoja"}, seen)
}

func TestSubscribe(t *testing.T) {
	l := NewWithBundle(nil, "", testBundle(t))

	var codes []string
	unsubscribe := l.Subscribe(func(code string) { codes = append(codes, code) })
	l.SetLanguage("en")
	unsubscribe()
	l.SetLanguage("es")

	assert.Equal(t, []string{"es", "en"}, codes)
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, "es", langs[0].Code)
	assert.Equal(t, "Español", langs[0].Name)
	assert.Equal(t, "en", langs[1].Code)

	langs[0].Code = "xx"
	assert.Equal(t, "es", Languages()[0].Code)
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("EN"))
}

func TestError(t *testing.T) {
	l := New(nil, "en")

	msg := l.Error(&internal.CapacityError{Limit: 15, Existing: 10, Incoming: 7})
	assert.Equal(t, "The limit of 15 routines would be exceeded. You have 10 and want to import 7.", msg)

	assert.Equal(t, "Routine not found: r-1", l.Error(&internal.NotFoundError{Kind: "routine", ID: "r-1"}))
	assert.Equal(t, "plain", l.Error(errors.New("plain")))

	l.SetLanguage("es")
	assert.NotEqual(t, "Routine not found: r-1", l.Error(&internal.NotFoundError{Kind: "routine", ID: "r-1"}))
}
