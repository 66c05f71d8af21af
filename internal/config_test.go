package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("HIITBEEP_DB", "/tmp/custom.db")
	t.Setenv("HIITBEEP_VERBOSE", "true")
	t.Setenv("LANG", "en_US.UTF-8")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "en_US.UTF-8", cfg.SystemLanguage)
}

func TestLoadConfig_InvalidBool(t *testing.T) {
	t.Setenv("HIITBEEP_VERBOSE", "maybe")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_ResolveDBPath(t *testing.T) {
	cfg := Config{DBPath: "/from/env.db"}

	path, err := cfg.ResolveDBPath("/from/flag.db")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", path)

	path, err = cfg.ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", path)
}
