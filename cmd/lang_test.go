package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
	"github.com/iksnae/hiitbeep/testutil"
)

func TestLang(t *testing.T) {
	db := testutil.TempDBPath(t)

	res := runCLI(t, db, "lang")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Language: 🇺🇸 English")

	res = runCLI(t, db, "lang", "set", "es")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Español")

	kv, err := internal.OpenSQLiteStore(db)
	require.NoError(t, err)
	saved, ok, err := kv.Get(i18n.PreferenceKey)
	require.NoError(t, err)
	require.NoError(t, kv.Close())
	assert.True(t, ok)
	assert.Equal(t, "es", saved)

	// the stored preference beats LANG
	res = runCLI(t, db, "stats")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Estadísticas")

	// --lang applies to one command only
	res = runCLI(t, db, "--lang", "en", "stats")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Statistics")

	res = runCLI(t, db, "lang", "get")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Español")
}

func TestLangSet_Unsupported(t *testing.T) {
	db := testutil.TempDBPath(t)
	res := runCLI(t, db, "lang", "set", "fr")

	var langErr *unsupportedLanguageError
	require.ErrorAs(t, res.Err, &langErr)
	assert.Equal(t, "Unsupported language: fr", res.Msg)

	res = runCLI(t, db, "lang", "get")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "English")
}

func TestLangList(t *testing.T) {
	res := runCLI(t, testutil.TempDBPath(t), "lang", "list")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Available languages")
	assert.Contains(t, res.Out, "es  🇪🇸 Español")
	assert.Contains(t, res.Out, "* en  🇺🇸 English")
}
