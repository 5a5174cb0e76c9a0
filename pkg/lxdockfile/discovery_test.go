// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lxdock.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: p\n"), 0o644))

	found, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscover_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "lxdock.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: p\n"), 0o644))

	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscover_PrecedenceWithinDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"lxdock.yml", ".lxdock.yml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("name: p\n"), 0o644))
	}

	found, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".lxdock.yml"), found)
}

func TestDiscover_NotFound(t *testing.T) {
	_, err := Discover(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
