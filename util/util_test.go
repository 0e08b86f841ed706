package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir, err := os.MkdirTemp("", "elephant-util")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	filePath := filepath.Join(dir, "conn.txt")
	assert.False(t, Exists(filePath))
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))
	assert.True(t, Exists(filePath))
	assert.True(t, Exists(dir))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 100, Max(100, -100))
	assert.Equal(t, 100, Max(-100, 100))
}

func TestIOError(t *testing.T) {
	inner := errors.New("permission denied")
	err := error(NewIOError("write", "/tmp/out.csv", inner))

	assert.Equal(t, "write /tmp/out.csv: permission denied", err.Error())
	assert.True(t, errors.Is(err, inner))

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "/tmp/out.csv", ioErr.Path)
}
