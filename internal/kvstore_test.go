package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/hiitbeep/testutil"
)

func TestSQLiteStore_GetSetRemove(t *testing.T) {
	store := NewSQLiteStore(testutil.CreateInMemoryDB(t))

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("key", "first"))
	value, ok, err := store.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", value)

	require.NoError(t, store.Set("key", "second"))
	value, _, err = store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	require.NoError(t, store.Remove("key"))
	_, ok, err = store.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is fine
	assert.NoError(t, store.Remove("key"))
}

func TestSQLiteStore_Keys(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	store := NewSQLiteStore(db)
	require.NoError(t, store.Set("hiitbeep_routines", "[]"))
	require.NoError(t, store.Set("hiitbeep_workout_logs", "[]"))
	require.NoError(t, store.Set("hiitbeep-language", "en"))
	require.NoError(t, store.Set("hiitbeepXroutines", "x"))

	pairs, err := store.Keys("hiitbeep_")
	require.NoError(t, err)

	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	// "_" is matched literally, not as a LIKE wildcard
	assert.Equal(t, []string{"hiitbeep_routines", "hiitbeep_workout_logs"}, keys)
}

func TestOpenSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(testutil.TempDBPath(t))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("k", "v"))
	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	store := NewSQLiteStore(db)
	require.NoError(t, store.Close())

	_, _, err := store.Get("k")
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "get", storageErr.Op)

	err = store.Set("k", "v")
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "set", storageErr.Op)
}
