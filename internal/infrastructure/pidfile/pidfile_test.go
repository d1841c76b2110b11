package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_WritesCurrentPIDAndCreatesDirectory(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "run", "grovesim.pid")
	pf := New(path)

	// Act
	err := pf.Acquire()

	// Assert
	require.NoError(t, err)
	pid, err := pf.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_ReplacesGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grovesim.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	require.NoError(t, New(path).Acquire())

	pid, err := New(path).Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_FailsWhileOtherProcessAlive(t *testing.T) {
	// The parent process (the test runner) is alive for the whole test
	path := filepath.Join(t.TempDir(), "grovesim.pid")
	parent := os.Getppid()
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(parent)+"\n"), 0o644))

	err := New(path).Acquire()

	var running *AlreadyRunningError
	require.ErrorAs(t, err, &running)
	assert.Equal(t, parent, running.PID)
}

func TestRelease_RemovesOwnFileOnly(t *testing.T) {
	dir := t.TempDir()

	own := New(filepath.Join(dir, "own.pid"))
	require.NoError(t, own.Acquire())
	require.NoError(t, own.Release())
	_, err := os.Stat(own.Path())
	assert.True(t, os.IsNotExist(err))

	foreignPath := filepath.Join(dir, "foreign.pid")
	require.NoError(t, os.WriteFile(foreignPath, []byte(strconv.Itoa(os.Getppid())+"\n"), 0o644))
	require.NoError(t, New(foreignPath).Release())
	_, err = os.Stat(foreignPath)
	assert.NoError(t, err)
}

func TestRelease_MissingFileIsNotAnError(t *testing.T) {
	assert.NoError(t, New(filepath.Join(t.TempDir(), "absent.pid")).Release())
}
