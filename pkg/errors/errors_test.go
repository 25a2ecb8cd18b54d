package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrNotInstalled, "component not installed")

	assert.Equal(t, ErrNotInstalled, err.Code)
	assert.Equal(t, "component not installed", err.Message)
	assert.Equal(t, "[NOT_INSTALLED] component not installed", err.Error())
	assert.Nil(t, err.Wrapped)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrSourceNotFound, "no source for %q", ".zshrc")

	assert.Equal(t, ErrSourceNotFound, err.Code)
	assert.Equal(t, `[SOURCE_NOT_FOUND] no source for ".zshrc"`, err.Error())
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := Wrap(underlying, ErrPermission, "cannot create symlink")

	require.NotNil(t, err)
	assert.Equal(t, ErrPermission, err.Code)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, underlying, err.Unwrap())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "should not happen"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "should not happen: %d", 42))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrPrerequisiteMissing, "zsh is not installed")

	assert.True(t, IsErrorCode(err, ErrPrerequisiteMissing))
	assert.False(t, IsErrorCode(err, ErrNotInstalled))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrPrerequisiteMissing))
}

func TestIsErrorCodeThroughWrapping(t *testing.T) {
	inner := New(ErrSourceNotFound, "missing source")
	outer := fmt.Errorf("syncing dotfiles: %w", inner)

	assert.True(t, IsErrorCode(outer, ErrSourceNotFound))
	assert.Equal(t, ErrSourceNotFound, GetErrorCode(outer))
}

func TestGetErrorCodeUnknown(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain error")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrPartialUninstall, "some artifacts remain").
		WithDetail("path", "/home/user/.oh-my-zsh")

	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "/home/user/.oh-my-zsh", details["path"])
}
