// Package paths provides centralized path handling for rigup.
// It resolves the configs root, the layered source directories, the
// backup directory and the locations of components that rigup manages.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigsRoot overrides the location of the configs directory
	EnvConfigsRoot = "RIGUP_CONFIGS_ROOT"

	// EnvBackupDir overrides the backup directory location
	EnvBackupDir = "RIGUP_BACKUP_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DefaultConfigsDir is the default directory name for config sources
	DefaultConfigsDir = "configs"

	// DefaultBackupDirName is the directory under $HOME holding backups
	DefaultBackupDirName = ".config-backups"

	// OhMyZshDirName is the oh-my-zsh install directory under $HOME
	OhMyZshDirName = ".oh-my-zsh"
)

// Paths provides centralized path management for rigup
type Paths struct {
	home        string
	configsRoot string
	backupDir   string
}

// New creates a new Paths instance. If configsRoot is empty it is taken
// from RIGUP_CONFIGS_ROOT, falling back to ./configs relative to the
// current working directory.
func New(configsRoot string) (*Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	if configsRoot == "" {
		configsRoot = os.Getenv(EnvConfigsRoot)
	}
	if configsRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to determine working directory")
		}
		configsRoot = filepath.Join(cwd, DefaultConfigsDir)
	}

	configsRoot, err = ExpandHome(configsRoot)
	if err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(configsRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for configs root")
	}

	backupDir := os.Getenv(EnvBackupDir)
	if backupDir == "" {
		backupDir = filepath.Join(home, DefaultBackupDirName)
	}

	return &Paths{
		home:        home,
		configsRoot: absRoot,
		backupDir:   backupDir,
	}, nil
}

// Home returns the user's home directory
func (p *Paths) Home() string {
	return p.home
}

// ConfigsRoot returns the root directory holding source layers
func (p *Paths) ConfigsRoot() string {
	return p.configsRoot
}

// LayerDir returns the absolute path of a named source layer
// (e.g. "personal" or "default") under the configs root.
func (p *Paths) LayerDir(name string) string {
	return filepath.Join(p.configsRoot, name)
}

// BackupDir returns the directory where backups are stored
func (p *Paths) BackupDir() string {
	return p.backupDir
}

// TargetPath maps a home-relative target to an absolute path.
// Managed files always live under the home directory.
func (p *Paths) TargetPath(rel string) string {
	return filepath.Join(p.home, rel)
}

// OhMyZshDir returns the oh-my-zsh installation directory
func (p *Paths) OhMyZshDir() string {
	return filepath.Join(p.home, OhMyZshDirName)
}

// OhMyZshPluginsDir returns the custom plugins directory for oh-my-zsh
func (p *Paths) OhMyZshPluginsDir() string {
	return filepath.Join(p.OhMyZshDir(), "custom", "plugins")
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME
// environment variable. If both fail, it returns an error rather
// than using dangerous defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands the ~ character to the user's home directory.
// Returns an error if home directory cannot be determined.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot expand ~")
		}
		return homeDir + path[1:], nil
	}

	return path, nil
}
