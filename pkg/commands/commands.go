// Package commands holds the application core behind the CLI: it
// wires configuration, paths and the component registry, and runs
// batch operations with partial-failure semantics.
package commands

import (
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/installer"
	"github.com/arthur-debert/rigup/pkg/installer/agentcli"
	"github.com/arthur-debert/rigup/pkg/installer/dotfiles"
	"github.com/arthur-debert/rigup/pkg/installer/ohmyzsh"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/status"
	"github.com/rs/zerolog"
)

// All is the pseudo component name meaning every registered component
const All = "all"

// App wires the component registry and exposes the operations the
// CLI commands call into
type App struct {
	cfg      *config.Config
	paths    *paths.Paths
	registry *installer.Registry
	dotfiles *dotfiles.Installer
	logger   zerolog.Logger
}

// NewApp builds the application core. configsRoot may be empty, in
// which case it is resolved from the environment.
func NewApp(configsRoot string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	p, err := paths.New(configsRoot)
	if err != nil {
		return nil, err
	}

	run := runner.New()

	df := dotfiles.New(p, cfg.Dotfiles.Layers, cfg.Dotfiles.Files, p.BackupDir())

	registry := installer.NewRegistry()
	registry.Register(ohmyzsh.New(p, cfg.OhMyZsh, run))
	registry.Register(agentcli.New(cfg.Agent, run))
	registry.Register(df)

	return &App{
		cfg:      cfg,
		paths:    p,
		registry: registry,
		dotfiles: df,
		logger:   logging.GetLogger("commands"),
	}, nil
}

// Registry exposes the component registry
func (a *App) Registry() *installer.Registry {
	return a.registry
}

// ManagedFiles returns the configured managed dotfiles
func (a *App) ManagedFiles() []config.ManagedFile {
	return a.cfg.Dotfiles.Files
}

// ComponentInfo is one row of the list command
type ComponentInfo struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Installed   bool   `yaml:"installed"`
}

// List describes every registered component and whether it is installed
func (a *App) List() []ComponentInfo {
	var infos []ComponentInfo
	for _, i := range a.registry.All() {
		infos = append(infos, ComponentInfo{
			Name:        i.Name(),
			Description: i.Description(),
			Installed:   i.IsInstalled(),
		})
	}
	return infos
}

// Result is the outcome of one component operation
type Result struct {
	Component string
	Action    string
	Err       error
}

// Failed reports whether any result carries an error
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Install installs one component, or all of them in registration
// order when name is "all" or empty. A failing component never stops
// the remaining ones.
func (a *App) Install(name string) []Result {
	if name == "" || name == All {
		var results []Result
		for _, i := range a.registry.All() {
			results = append(results, a.installOne(i))
		}
		return results
	}

	i, err := a.registry.Get(name)
	if err != nil {
		return []Result{{Component: name, Action: "install", Err: err}}
	}
	return []Result{a.installOne(i)}
}

func (a *App) installOne(i installer.Installer) Result {
	result := Result{Component: i.Name(), Action: "install"}

	if i.IsInstalled() {
		a.logger.Info().Str("component", i.Name()).Msg("Already installed, refreshing")
	}

	a.logger.Info().Str("component", i.Name()).Msg("Installing")
	if err := i.Install(); err != nil {
		a.logger.Error().Err(err).Str("component", i.Name()).Msg("Install failed")
		result.Err = err
	}
	return result
}

// Update updates a single component
func (a *App) Update(name string) Result {
	result := Result{Component: name, Action: "update"}

	i, err := a.registry.Get(name)
	if err != nil {
		result.Err = err
		return result
	}

	a.logger.Info().Str("component", name).Msg("Updating")
	if err := i.Update(); err != nil {
		a.logger.Error().Err(err).Str("component", name).Msg("Update failed")
		result.Err = err
	}
	return result
}

// Uninstall removes a single component
func (a *App) Uninstall(name string) Result {
	result := Result{Component: name, Action: "uninstall"}

	i, err := a.registry.Get(name)
	if err != nil {
		result.Err = err
		return result
	}

	a.logger.Info().Str("component", name).Msg("Uninstalling")
	if err := i.Uninstall(); err != nil {
		if errors.IsErrorCode(err, errors.ErrPartialUninstall) {
			a.logger.Warn().Err(err).Str("component", name).Msg("Uninstall left artifacts behind")
		} else {
			a.logger.Error().Err(err).Str("component", name).Msg("Uninstall failed")
		}
		result.Err = err
	}
	return result
}

// Status returns the dotfiles deployment report
func (a *App) Status() *status.Report {
	return a.dotfiles.Reporter().Report()
}

// Diff returns the content drift for a managed file deployed as a
// regular file, or an empty string when there is nothing to compare.
func (a *App) Diff(name string) (string, error) {
	for _, file := range a.cfg.Dotfiles.Files {
		if file.Name == name {
			return a.dotfiles.Reporter().Diff(file), nil
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "%q is not a managed file", name)
}
