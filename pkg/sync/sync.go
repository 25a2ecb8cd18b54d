// Package sync brings the home directory's managed dotfiles into
// agreement with their resolved sources. Each managed file is handled
// independently: a missing source or a failed link never stops the
// remaining files from being processed.
package sync

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/backup"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/resolver"
	"github.com/rs/zerolog"
)

// Outcome classifies what happened to a single managed file
type Outcome string

const (
	// OutcomeLinked means the symlink now points at the resolved source
	OutcomeLinked Outcome = "linked"

	// OutcomeSkipped means the file was not processed (no source found)
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the file could not be linked
	OutcomeFailed Outcome = "failed"

	// OutcomeRemoved means the symlink was removed during unlink
	OutcomeRemoved Outcome = "removed"
)

// FileResult is the per-file result of a sync run
type FileResult struct {
	Name    string
	Target  string
	Source  string
	Outcome Outcome
	Backup  *backup.Record
	Err     error
}

// Summary aggregates the results of a sync run
type Summary struct {
	Results []FileResult
}

// Counts returns the number of linked, skipped and failed files
func (s *Summary) Counts() (linked, skipped, failed int) {
	for _, r := range s.Results {
		switch r.Outcome {
		case OutcomeLinked:
			linked++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return linked, skipped, failed
}

// HasFailures reports whether any file failed
func (s *Summary) HasFailures() bool {
	_, _, failed := s.Counts()
	return failed > 0
}

// KnownSources builds the predicate the backup manager uses to decide
// whether a symlink already points at a managed source file.
func KnownSources(r *resolver.Resolver, files []config.ManagedFile) backup.KnownSourceFunc {
	return func(target string) bool {
		for _, file := range files {
			for _, source := range r.KnownSources(file.Name) {
				if source == target {
					return true
				}
			}
		}
		return false
	}
}

// Syncer deploys managed dotfiles as symlinks into the home directory
type Syncer struct {
	paths    *paths.Paths
	resolver *resolver.Resolver
	backups  *backup.Manager
	files    []config.ManagedFile
	logger   zerolog.Logger
}

// New creates a synchronizer for the given managed files
func New(p *paths.Paths, r *resolver.Resolver, b *backup.Manager, files []config.ManagedFile) *Syncer {
	return &Syncer{
		paths:    p,
		resolver: r,
		backups:  b,
		files:    files,
		logger:   logging.GetLogger("sync"),
	}
}

// Sync links every managed file and returns a per-file summary.
// Running it twice with unchanged sources is a no-op: the backup
// manager recognizes symlinks that already point at a managed source,
// so no second backup is created.
func (s *Syncer) Sync() *Summary {
	summary := &Summary{}
	for _, file := range s.files {
		summary.Results = append(summary.Results, s.syncFile(file))
	}

	linked, skipped, failed := summary.Counts()
	s.logger.Info().
		Int("linked", linked).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("Sync completed")

	return summary
}

func (s *Syncer) syncFile(file config.ManagedFile) FileResult {
	result := FileResult{
		Name:   file.Name,
		Target: s.paths.TargetPath(file.TargetName()),
	}

	source, err := s.resolver.Resolve(file.Name)
	if err != nil {
		s.logger.Warn().Str("name", file.Name).Err(err).Msg("Skipping file without source")
		result.Outcome = OutcomeSkipped
		result.Err = err
		return result
	}
	result.Source = source

	record, err := s.backups.Protect(result.Target)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	result.Backup = record

	if err := s.link(source, result.Target); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	if mode, ok := file.FileMode(); ok {
		if err := os.Chmod(source, mode); err != nil {
			s.logger.Warn().Str("source", source).Err(err).Msg("Failed to set file mode")
		}
	}

	s.logger.Debug().Str("target", result.Target).Str("source", source).Msg("Linked file")
	result.Outcome = OutcomeLinked
	return result
}

// link replaces whatever is at target with a symlink to source.
// Sources are linked by absolute path so moving the working directory
// never breaks deployed links.
func (s *Syncer) link(source, target string) error {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve absolute path for %s", source)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent directory for %s", target)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove existing %s", target)
	}

	if err := os.Symlink(absSource, target); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "no permission to create symlink %s", target)
		}
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s", target)
	}

	return nil
}

// Unlink removes the managed symlinks from the home directory and
// restores the newest backup for each file when one exists. Regular
// files at a target are left alone.
func (s *Syncer) Unlink() *Summary {
	summary := &Summary{}
	for _, file := range s.files {
		summary.Results = append(summary.Results, s.unlinkFile(file))
	}
	return summary
}

func (s *Syncer) unlinkFile(file config.ManagedFile) FileResult {
	result := FileResult{
		Name:   file.Name,
		Target: s.paths.TargetPath(file.TargetName()),
	}

	info, err := os.Lstat(result.Target)
	if os.IsNotExist(err) {
		result.Outcome = OutcomeSkipped
		return result
	}
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", result.Target)
		return result
	}

	if info.Mode()&os.ModeSymlink == 0 {
		s.logger.Warn().Str("target", result.Target).Msg("Target is not a managed symlink, leaving in place")
		result.Outcome = OutcomeSkipped
		return result
	}

	if err := os.Remove(result.Target); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot remove symlink %s", result.Target)
		return result
	}

	if _, err := s.backups.Restore(filepath.Base(result.Target), result.Target); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = OutcomeRemoved
	return result
}
