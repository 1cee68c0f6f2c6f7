package bytesource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/hexwrench/internal/bytesource"
)

func TestOpenReadsFileContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bin")
	want := []byte("ABCDEFGHIJ")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	src, err := bytesource.Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, want, src.Bytes())
	assert.Equal(t, len(want), src.Len())
	assert.Equal(t, path, src.Name())
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	src, err := bytesource.Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 0, src.Len())
	assert.Empty(t, src.Bytes())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := bytesource.Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}
