package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSavePadsIdentifier(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, 3)
	require.NoError(t, err)

	path, err := p.Save(7, []byte("<html>seven</html>"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "page_007.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<html>seven</html>", string(data))
}

func TestSaveWidensBeyondPadWidth(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, 3)
	require.NoError(t, err)

	path, err := p.Save(1234, []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "page_1234.html"), path)
}

func TestSaveCustomPadWidth(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, 5)
	require.NoError(t, err)

	path, err := p.Save(7, []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "page_00007.html"), path)
}

func TestSaveOverwritesSilently(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, 3)
	require.NoError(t, err)

	first, err := p.Save(1, []byte("old"))
	require.NoError(t, err)
	second, err := p.Save(1, []byte("new"))
	require.NoError(t, err)
	require.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestNewCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "pages")
	p, err := New(dir, 0)
	require.NoError(t, err)
	require.Equal(t, dir, p.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// Zero pad width falls back to the default of three digits.
	path, err := p.Save(2, []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "page_002.html"), path)
}
