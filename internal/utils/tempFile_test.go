package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "file.txt")

	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0644))
}

func TestInitLogger_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	closer, err := InitLogger("debug", logPath)
	require.NoError(t, err)
	Logger.Debug().Str("module", "test").Msg("hello log")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello log")
}

func TestInitLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	closer, err := InitLogger("loud", "")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, "info", Logger.GetLevel().String())
}
