// Package dotfiles adapts the synchronizer to the installer contract:
// install links managed files, uninstall removes the links and
// restores backups.
package dotfiles

import (
	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/resolver"
	"github.com/arthur-debert/rigup/pkg/status"
	"github.com/arthur-debert/rigup/pkg/sync"
	"github.com/rs/zerolog"
)

// ComponentName identifies this installer in the registry
const ComponentName = "dotfiles"

// Installer deploys dotfiles through the synchronizer
type Installer struct {
	syncer   *sync.Syncer
	reporter *status.Reporter
	files    []config.ManagedFile
	logger   zerolog.Logger
}

// New wires the dotfiles installer from its collaborators. The backup
// manager is taught to recognize managed sources so repeated installs
// stay backup-free.
func New(p *paths.Paths, layers []string, files []config.ManagedFile, backupDir string) *Installer {
	layerDirs := make([]string, 0, len(layers))
	for _, layer := range layers {
		layerDirs = append(layerDirs, p.LayerDir(layer))
	}
	r := resolver.New(layerDirs)
	b := backup.New(backupDir, sync.KnownSources(r, files))

	return &Installer{
		syncer:   sync.New(p, r, b, files),
		reporter: status.New(p, r, files),
		files:    files,
		logger:   logging.GetLogger("installer.dotfiles"),
	}
}

// Name returns the component name
func (i *Installer) Name() string { return ComponentName }

// Description returns a short description for listings
func (i *Installer) Description() string {
	return "Deploy dotfiles (.zshrc, .gitconfig, etc.) as symlinks into the home directory"
}

// Reporter exposes the status reporter for the status command
func (i *Installer) Reporter() *status.Reporter {
	return i.reporter
}

// IsInstalled reports whether every resolvable managed file is linked
// to its current source. Files without any source are not counted
// against installation.
func (i *Installer) IsInstalled() bool {
	report := i.reporter.Report()
	installed := false
	for _, f := range report.Files {
		switch f.State {
		case status.StateSourceMissing:
			continue
		case status.StateLinked:
			installed = true
		default:
			return false
		}
	}
	return installed
}

// Install synchronizes all managed files. Per-file failures are
// aggregated; a partial failure is an error but already-linked files
// stay linked.
func (i *Installer) Install() error {
	summary := i.syncer.Sync()
	if summary.HasFailures() {
		_, _, failed := summary.Counts()
		err := errors.Newf(errors.ErrFileAccess, "%d dotfile(s) could not be linked", failed)
		for _, r := range summary.Results {
			if r.Outcome == sync.OutcomeFailed {
				err = err.WithDetail(r.Name, r.Err.Error())
			}
		}
		return err
	}
	return nil
}

// Update re-synchronizes; with symlinks in place this is a no-op
// unless the resolved source changed layers.
func (i *Installer) Update() error {
	if !i.anyLinked() {
		return errors.New(errors.ErrNotInstalled, "dotfiles have not been installed")
	}
	return i.Install()
}

// Uninstall removes managed symlinks and restores the newest backups.
// Targets that are regular files are left untouched; remaining
// artifacts surface as PARTIAL_UNINSTALL.
func (i *Installer) Uninstall() error {
	summary := i.syncer.Unlink()
	for _, r := range summary.Results {
		if r.Outcome == sync.OutcomeFailed {
			return errors.Wrapf(r.Err, errors.ErrPartialUninstall,
				"could not remove %s", r.Target)
		}
	}
	return nil
}

func (i *Installer) anyLinked() bool {
	for _, f := range i.reporter.Report().Files {
		if f.State == status.StateLinked || f.State == status.StateStale {
			return true
		}
	}
	return false
}
