// Package backup guarantees that no user data is silently lost when
// the synchronizer overwrites a file. Backups are append-only: a
// prior backup is never overwritten, even when two backups of the
// same file land within the same second.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/rs/zerolog"
)

// TimestampFormat is the second-resolution suffix on backup filenames
const TimestampFormat = "20060102_150405"

// Record describes a backup that was taken
type Record struct {
	OriginalPath string
	BackupPath   string
	CreatedAt    time.Time
}

// KnownSourceFunc reports whether a symlink target is one of the
// managed source files, in which case re-linking is idempotent and no
// backup is needed.
type KnownSourceFunc func(target string) bool

// Manager creates timestamped backups in a dedicated directory
type Manager struct {
	dir         string
	knownSource KnownSourceFunc
	logger      zerolog.Logger
	now         func() time.Time
}

// New creates a backup manager writing into dir. knownSource may be
// nil, in which case every existing symlink is backed up by copying
// its target content.
func New(dir string, knownSource KnownSourceFunc) *Manager {
	return &Manager{
		dir:         dir,
		knownSource: knownSource,
		logger:      logging.GetLogger("backup"),
		now:         time.Now,
	}
}

// Dir returns the backup directory
func (m *Manager) Dir() string {
	return m.dir
}

// Protect backs up the file at path before it gets overwritten.
// It returns nil when no backup is needed: the path does not exist,
// or it is already a symlink to a managed source.
func (m *Manager) Protect(path string) (*Record, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read symlink %s", path)
		}
		if m.knownSource != nil && m.knownSource(target) {
			m.logger.Debug().Str("path", path).Str("target", target).
				Msg("Symlink already points at a managed source, no backup needed")
			return nil, nil
		}
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create backup directory %s", m.dir)
	}

	createdAt := m.now()
	backupPath, err := m.allocate(filepath.Base(path), createdAt)
	if err != nil {
		return nil, err
	}

	if err := copyFile(path, backupPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackupCreate, "cannot back up %s", path)
	}

	m.logger.Info().Str("path", path).Str("backup", backupPath).Msg("Created backup")

	return &Record{
		OriginalPath: path,
		BackupPath:   backupPath,
		CreatedAt:    createdAt,
	}, nil
}

// Latest returns the newest backup for the given original filename,
// or an empty string when none exists.
func (m *Manager) Latest(name string) string {
	matches, err := filepath.Glob(filepath.Join(m.dir, name+".backup_*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	// Timestamped names sort chronologically; counter suffixes sort
	// after the bare name within the same second.
	sort.Strings(matches)
	return matches[len(matches)-1]
}

// Restore copies the newest backup for name to target. It reports
// whether a backup was found.
func (m *Manager) Restore(name, target string) (bool, error) {
	latest := m.Latest(name)
	if latest == "" {
		return false, nil
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s before restore", target)
	}
	if err := copyFile(latest, target); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot restore %s from %s", target, latest)
	}
	m.logger.Info().Str("backup", latest).Str("target", target).Msg("Restored backup")
	return true, nil
}

// allocate picks a backup path that does not collide with an existing
// backup. Same-second collisions get a monotonic counter suffix.
func (m *Manager) allocate(name string, at time.Time) (string, error) {
	base := filepath.Join(m.dir, fmt.Sprintf("%s.backup_%s", name, at.Format(TimestampFormat)))

	candidate := base
	for counter := 1; ; counter++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot probe backup path %s", candidate)
		}
		candidate = fmt.Sprintf("%s.%d", base, counter)
	}
}

// copyFile copies src to dst, following symlinks on the source side so
// that backing up a stale symlink preserves the content it pointed at.
// A dangling symlink is preserved as a copy of the link itself.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if linkTarget, linkErr := os.Readlink(src); linkErr == nil {
			return os.Symlink(linkTarget, dst)
		}
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// IsBackupName reports whether a filename follows the backup naming scheme
func IsBackupName(name string) bool {
	return strings.Contains(name, ".backup_")
}
