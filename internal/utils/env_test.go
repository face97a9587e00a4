package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_LoadsWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OLLAMACHAT_TEST_VALUE=from-file\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("OLLAMACHAT_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("OLLAMACHAT_TEST_VALUE"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "from-file", os.Getenv("OLLAMACHAT_TEST_VALUE"))
}

func TestLoadEnv_MissingFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
