// Package ohmyzsh installs the oh-my-zsh shell framework and its
// required plugins.
package ohmyzsh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/system"
	"github.com/rs/zerolog"
)

// ComponentName identifies this installer in the registry
const ComponentName = "oh-my-zsh"

// commandRunner is the subset of the runner used here
type commandRunner interface {
	Run(name string, args ...string) runner.Result
	RunIn(dir, name string, args ...string) runner.Result
	RunShell(command string) runner.Result
}

// Installer installs oh-my-zsh and its plugins
type Installer struct {
	paths  *paths.Paths
	cfg    config.OhMyZshConfig
	run    commandRunner
	exists func(string) bool
	logger zerolog.Logger
}

// New creates the oh-my-zsh installer
func New(p *paths.Paths, cfg config.OhMyZshConfig, run commandRunner) *Installer {
	return &Installer{
		paths:  p,
		cfg:    cfg,
		run:    run,
		exists: system.CommandExists,
		logger: logging.GetLogger("installer.ohmyzsh"),
	}
}

// Name returns the component name
func (i *Installer) Name() string { return ComponentName }

// Description returns a short description for listings
func (i *Installer) Description() string {
	return "Oh My Zsh framework with syntax highlighting and autosuggestions (requires zsh)"
}

// IsInstalled checks for the framework directory and its entry script
func (i *Installer) IsInstalled() bool {
	script := filepath.Join(i.paths.OhMyZshDir(), "oh-my-zsh.sh")
	info, err := os.Stat(script)
	return err == nil && info.Mode().IsRegular()
}

// checkPrerequisites verifies the commands the install script needs
func (i *Installer) checkPrerequisites() error {
	var missing []string
	for _, cmd := range []string{"zsh", "git"} {
		if !i.exists(cmd) {
			missing = append(missing, cmd)
		}
	}
	if !i.exists("curl") && !i.exists("wget") {
		missing = append(missing, "curl or wget")
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrPrerequisiteMissing,
			"missing required commands: %v", missing).
			WithDetail("missing", missing)
	}
	if !system.HasSufficientDiskSpace(i.paths.Home()) {
		return errors.New(errors.ErrPrerequisiteMissing, "insufficient disk space (need at least 1GiB free)")
	}
	return nil
}

// Install sets up oh-my-zsh and its plugins. Safe to call when
// already installed: the framework step is skipped and plugins are
// refreshed.
func (i *Installer) Install() error {
	if err := i.checkPrerequisites(); err != nil {
		return err
	}

	if i.IsInstalled() {
		i.logger.Info().Msg("oh-my-zsh already installed")
	} else {
		i.logger.Info().Msg("Installing oh-my-zsh")
		command := fmt.Sprintf(`sh -c "$(curl -fsSL %s)" "" --unattended`, i.cfg.InstallScriptURL)
		if result := i.run.RunShell(command); result.Error != nil {
			return result.Error
		}
		if !i.IsInstalled() {
			return errors.New(errors.ErrExternalProcess, "oh-my-zsh install script completed but framework is not present")
		}
	}

	return i.installPlugins()
}

// installPlugins clones each configured plugin, or pulls when the
// clone already exists
func (i *Installer) installPlugins() error {
	pluginsDir := i.paths.OhMyZshPluginsDir()
	if err := os.MkdirAll(pluginsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create plugins directory %s", pluginsDir)
	}

	for _, plugin := range i.cfg.Plugins {
		pluginPath := filepath.Join(pluginsDir, plugin.Name)
		if _, err := os.Stat(pluginPath); err == nil {
			i.logger.Info().Str("plugin", plugin.Name).Msg("Updating existing plugin")
			if result := i.run.RunIn(pluginPath, "git", "pull"); result.Error != nil {
				return result.Error
			}
		} else {
			i.logger.Info().Str("plugin", plugin.Name).Msg("Installing plugin")
			if result := i.run.Run("git", "clone", plugin.Repo, pluginPath); result.Error != nil {
				return result.Error
			}
		}
	}
	return nil
}

// Update pulls the framework and refreshes plugins
func (i *Installer) Update() error {
	if !i.IsInstalled() {
		return errors.New(errors.ErrNotInstalled, "oh-my-zsh is not installed")
	}

	i.logger.Info().Msg("Updating oh-my-zsh")
	if result := i.run.RunIn(i.paths.OhMyZshDir(), "git", "pull"); result.Error != nil {
		return result.Error
	}

	return i.installPlugins()
}

// Uninstall removes the framework directory and attempts to restore
// bash as the login shell. A failing chsh is logged but does not fail
// the uninstall; a framework directory that cannot be removed does.
func (i *Installer) Uninstall() error {
	dir := i.paths.OhMyZshDir()
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrPartialUninstall,
			"could not remove %s", dir).WithDetail("path", dir)
	}

	if result := i.run.Run("chsh", "-s", "/bin/bash"); result.Error != nil {
		i.logger.Warn().Err(result.Error).Msg("Could not restore bash as login shell")
	}

	return nil
}
