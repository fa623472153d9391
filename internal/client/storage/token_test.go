package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore_Lifecycle(t *testing.T) {
	s := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	tkn, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tkn)

	require.NoError(t, s.Save("abc.def.ghi"))
	tkn, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tkn)

	require.NoError(t, s.Clear())
	tkn, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, tkn)

	require.NoError(t, s.Clear())
}

func TestFileTokenStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, NewFileTokenStore(path).Save("x"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
