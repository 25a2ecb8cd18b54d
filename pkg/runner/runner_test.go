package runner

import (
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	r := New()

	result := r.Run("echo", "hello")

	require.True(t, result.Success)
	assert.NoError(t, result.Error)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Empty(t, result.Stderr)
}

func TestRunFailureIsStructured(t *testing.T) {
	r := New()

	result := r.Run("sh", "-c", "echo oops >&2; exit 3")

	require.False(t, result.Success)
	require.Error(t, result.Error)
	assert.True(t, errors.IsErrorCode(result.Error, errors.ErrExternalProcess))
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestRunMissingBinary(t *testing.T) {
	r := New()

	result := r.Run("definitely-not-a-real-command-xyz")

	assert.False(t, result.Success)
	assert.True(t, errors.IsErrorCode(result.Error, errors.ErrExternalProcess))
}

func TestRunInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := New()

	result := r.RunIn(dir, "pwd")

	require.True(t, result.Success)
	assert.Contains(t, result.Stdout, dir)
}

func TestRunShell(t *testing.T) {
	r := New()

	result := r.RunShell("echo one && echo two")

	require.True(t, result.Success)
	assert.Equal(t, "one\ntwo\n", result.Stdout)
}
