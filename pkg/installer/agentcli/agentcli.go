// Package agentcli installs the AI agent CLI through npm and
// registers its plugins.
package agentcli

import (
	"fmt"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/system"
	"github.com/rs/zerolog"
)

// ComponentName identifies this installer in the registry
const ComponentName = "agent-cli"

type commandRunner interface {
	Run(name string, args ...string) runner.Result
	RunShell(command string) runner.Result
}

// Installer installs the agent CLI and registers its plugins
type Installer struct {
	cfg    config.AgentConfig
	run    commandRunner
	exists func(string) bool
	logger zerolog.Logger
}

// New creates the agent CLI installer
func New(cfg config.AgentConfig, run commandRunner) *Installer {
	return &Installer{
		cfg:    cfg,
		run:    run,
		exists: system.CommandExists,
		logger: logging.GetLogger("installer.agentcli"),
	}
}

// Name returns the component name
func (i *Installer) Name() string { return ComponentName }

// Description returns a short description for listings
func (i *Installer) Description() string {
	return fmt.Sprintf("AI agent CLI (%s) with plugins (requires Node.js/npm)", i.cfg.Command)
}

// IsInstalled checks that the CLI is on the PATH and responds to --version
func (i *Installer) IsInstalled() bool {
	if !i.exists(i.cfg.Command) {
		return false
	}
	return i.run.Run(i.cfg.Command, "--version").Success
}

func (i *Installer) checkPrerequisites() error {
	var missing []string
	for _, cmd := range []string{"node", "npm"} {
		if !i.exists(cmd) {
			missing = append(missing, cmd)
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrPrerequisiteMissing,
			"missing required commands: %v", missing).
			WithDetail("missing", missing)
	}
	return nil
}

// Install installs the CLI globally via npm, falling back to the
// configured install script when npm leaves no working binary, then
// registers plugins. Plugin registration is best-effort: a failing
// plugin never fails the install.
func (i *Installer) Install() error {
	if err := i.checkPrerequisites(); err != nil {
		return err
	}

	if i.exists(i.cfg.Command) {
		i.logger.Info().Str("command", i.cfg.Command).Msg("CLI already installed")
	} else {
		i.logger.Info().Str("package", i.cfg.Package).Msg("Installing CLI via npm")
		if result := i.run.Run("npm", "install", "-g", i.cfg.Package); result.Error != nil {
			return result.Error
		}

		if !i.run.Run(i.cfg.Command, "--version").Success {
			if i.cfg.InstallScriptURL == "" {
				return errors.Newf(errors.ErrExternalProcess,
					"%s is not functional after npm install", i.cfg.Command)
			}
			i.logger.Info().Msg("npm install left no working binary, trying install script")
			command := fmt.Sprintf("curl -fsSL %s | sh", i.cfg.InstallScriptURL)
			if result := i.run.RunShell(command); result.Error != nil {
				return result.Error
			}
		}
	}

	i.registerPlugins()
	return nil
}

// registerPlugins runs each plugin registration through the CLI itself
func (i *Installer) registerPlugins() {
	for _, plugin := range i.cfg.Plugins {
		i.logger.Info().Str("plugin", plugin.Name).Msg("Registering plugin")
		if result := i.run.Run(i.cfg.Command, plugin.Args...); result.Error != nil {
			i.logger.Warn().Err(result.Error).Str("plugin", plugin.Name).
				Msg("Plugin registration failed, continuing")
		}
	}
}

// Update refreshes the CLI and re-registers plugins
func (i *Installer) Update() error {
	if !i.IsInstalled() {
		return errors.Newf(errors.ErrNotInstalled, "%s is not installed", i.cfg.Command)
	}

	i.logger.Info().Str("package", i.cfg.Package).Msg("Updating CLI via npm")
	if result := i.run.Run("npm", "update", "-g", i.cfg.Package); result.Error != nil {
		return result.Error
	}

	i.registerPlugins()
	return nil
}

// Uninstall removes the global npm package. The plugin registrations
// live in the CLI's own configuration and cannot be removed once the
// CLI is gone, so a failing npm uninstall reports PARTIAL_UNINSTALL.
func (i *Installer) Uninstall() error {
	if result := i.run.Run("npm", "uninstall", "-g", i.cfg.Package); result.Error != nil {
		return errors.Wrapf(result.Error, errors.ErrPartialUninstall,
			"npm could not remove %s", i.cfg.Package)
	}
	return nil
}
