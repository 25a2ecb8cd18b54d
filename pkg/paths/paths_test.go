package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithExplicitRoot(t *testing.T) {
	root := t.TempDir()

	p, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, root, p.ConfigsRoot())
	assert.Equal(t, filepath.Join(root, "personal"), p.LayerDir("personal"))
	assert.Equal(t, filepath.Join(root, "default"), p.LayerDir("default"))
}

func TestNewFromEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvConfigsRoot, root)

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, root, p.ConfigsRoot())
}

func TestBackupDirDefaultsUnderHome(t *testing.T) {
	t.Setenv(EnvBackupDir, "")

	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.Home(), DefaultBackupDirName), p.BackupDir())
}

func TestBackupDirFromEnvironment(t *testing.T) {
	backups := t.TempDir()
	t.Setenv(EnvBackupDir, backups)

	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, backups, p.BackupDir())
}

func TestTargetPathIsUnderHome(t *testing.T) {
	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.Home(), ".zshrc"), p.TargetPath(".zshrc"))
}

func TestOhMyZshDirs(t *testing.T) {
	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.Home(), ".oh-my-zsh"), p.OhMyZshDir())
	assert.Equal(t, filepath.Join(p.OhMyZshDir(), "custom", "plugins"), p.OhMyZshPluginsDir())
}

func TestExpandHome(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare tilde", "~", home},
		{"tilde with path", "~/configs", home + "/configs"},
		{"absolute path unchanged", "/etc/passwd", "/etc/passwd"},
		{"relative path unchanged", "configs", "configs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
