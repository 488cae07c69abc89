package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarvinen/loghub/internal/logger"
)

// testLine returns a line of exactly 25 bytes, tagged with n.
func testLine(n int) []byte {
	return []byte(fmt.Sprintf("line %04d ..............\n", n))
}

func newTestWriter(t *testing.T, maxBytes int64, backups int) (*logger.RotatingFileWriter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := logger.NewRotatingFileWriter(path, maxBytes, backups)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, path
}

func TestRotationBoundary(t *testing.T) {
	// 4 lines of 25 bytes fill the 100-byte bound exactly; the 5th
	// write must trigger exactly one rotation.
	w, path := newTestWriter(t, 100, 3)

	for i := 1; i <= 4; i++ {
		_, err := w.Write(testLine(i))
		require.NoError(t, err)
	}
	require.NoError(t, w.Flush())

	_, err := os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err), "no rotation before the bound is exceeded")

	_, err = w.Write(testLine(5))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Len(t, backup, 100)

	// The triggering line lands in the fresh active file, never lost.
	active, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(testLine(5)), string(active))
}

func TestRotationBackupChain(t *testing.T) {
	w, path := newTestWriter(t, 100, 3)

	// 18 writes produce 4 rotations; with backup_count=3 the oldest
	// generation must have been deleted.
	for i := 1; i <= 18; i++ {
		_, err := w.Write(testLine(i))
		require.NoError(t, err)
	}
	require.NoError(t, w.Flush())

	for _, suffix := range []string{"", ".1", ".2", ".3"} {
		_, err := os.Stat(path + suffix)
		assert.NoError(t, err, "expected %s%s to exist", filepath.Base(path), suffix)
	}
	_, err := os.Stat(path + ".4")
	assert.True(t, os.IsNotExist(err), "backup count must bound the generations kept")

	// Generations are ordered newest-first: .1 holds lines 13-16,
	// .3 holds lines 5-8 (lines 1-4 were in the dropped generation).
	gen1, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(gen1), string(testLine(13))))

	gen3, err := os.ReadFile(path + ".3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(gen3), string(testLine(5))))

	active, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(testLine(17))+string(testLine(18)), string(active))
}

func TestRotationDisabled(t *testing.T) {
	w, path := newTestWriter(t, 0, 5)

	for i := 1; i <= 100; i++ {
		_, err := w.Write(testLine(i))
		require.NoError(t, err)
	}
	require.NoError(t, w.Flush())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, 100*25, info.Size())

	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestRotationResumesExistingFile(t *testing.T) {
	// Size accounting starts from what is already on disk, so an
	// append session after restart still rotates at the bound.
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 90)), 0o600))

	w, err := logger.NewRotatingFileWriter(path, 100, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	_, err = w.Write(testLine(1))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Len(t, backup, 90)
}

func TestWriterCloseIdempotent(t *testing.T) {
	w, _ := newTestWriter(t, 100, 1)

	_, err := w.Write(testLine(1))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write(testLine(2))
	assert.Error(t, err, "writes after close must fail")
}
