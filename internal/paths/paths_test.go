package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(EnvConfigDir, envDir)

	got, err := ResolveConfigDir(flagDir)
	require.NoError(t, err)
	assert.Equal(t, flagDir, got, "the flag beats the environment")

	got, err = ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, envDir, got)
}

func TestResolveConfigDirDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	if runtime.GOOS == "linux" {
		base := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", base)
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "cmdpal"), got)
		return
	}
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, "cmdpal", filepath.Base(got))
}

func TestResolveDataDirPrecedence(t *testing.T) {
	envDir := t.TempDir()
	configDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(EnvDataDir, envDir)

	got, err := ResolveDataDir(flagDir, configDir)
	require.NoError(t, err)
	assert.Equal(t, flagDir, got)

	got, err = ResolveDataDir("", configDir)
	require.NoError(t, err)
	assert.Equal(t, configDir, got, "the config value beats the environment")

	got, err = ResolveDataDir("", "")
	require.NoError(t, err)
	assert.Equal(t, envDir, got)
}

func TestResolveDataDirDefault(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	if runtime.GOOS == "linux" {
		base := t.TempDir()
		t.Setenv("XDG_DATA_HOME", base)
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "cmdpal"), got)
	}
}
