// Package status reports, for each managed dotfile, how the deployed
// state in the home directory compares to the resolved source. The
// report is read-only; nothing here mutates the filesystem.
package status

import (
	"os"
	"strings"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/resolver"
	"github.com/google/go-cmp/cmp"
)

// LinkState classifies the deployed state of a managed file
type LinkState string

const (
	// StateLinked means the target is a symlink to the resolved source
	StateLinked LinkState = "linked"

	// StateStale means the target is a symlink to something else
	StateStale LinkState = "stale"

	// StateUnsynced means the target is a regular file
	StateUnsynced LinkState = "unsynced"

	// StateMissing means nothing exists at the target
	StateMissing LinkState = "missing"

	// StateSourceMissing means no layer provides a source for the file
	StateSourceMissing LinkState = "source-missing"
)

// FileStatus is the per-file entry of a report
type FileStatus struct {
	Name         string    `yaml:"name"`
	Target       string    `yaml:"target"`
	Source       string    `yaml:"source,omitempty"`
	ActualTarget string    `yaml:"actual_target,omitempty"`
	State        LinkState `yaml:"state"`
}

// Report covers all managed files
type Report struct {
	Files []FileStatus `yaml:"files"`
}

// Clean reports whether every file is linked to its resolved source
func (r *Report) Clean() bool {
	for _, f := range r.Files {
		if f.State != StateLinked {
			return false
		}
	}
	return true
}

// Reporter computes deployment status for managed files
type Reporter struct {
	paths    *paths.Paths
	resolver *resolver.Resolver
	files    []config.ManagedFile
}

// New creates a status reporter
func New(p *paths.Paths, r *resolver.Resolver, files []config.ManagedFile) *Reporter {
	return &Reporter{paths: p, resolver: r, files: files}
}

// Report computes the state of every managed file
func (r *Reporter) Report() *Report {
	report := &Report{}
	for _, file := range r.files {
		report.Files = append(report.Files, r.check(file))
	}
	return report
}

func (r *Reporter) check(file config.ManagedFile) FileStatus {
	status := FileStatus{
		Name:   file.Name,
		Target: r.paths.TargetPath(file.TargetName()),
	}

	source, err := r.resolver.Resolve(file.Name)
	if err != nil {
		status.State = StateSourceMissing
		return status
	}
	status.Source = source

	info, err := os.Lstat(status.Target)
	if os.IsNotExist(err) {
		status.State = StateMissing
		return status
	}
	if err != nil {
		status.State = StateMissing
		return status
	}

	if info.Mode()&os.ModeSymlink == 0 {
		status.State = StateUnsynced
		return status
	}

	actual, err := os.Readlink(status.Target)
	if err != nil {
		status.State = StateStale
		return status
	}
	status.ActualTarget = actual

	if actual == source {
		status.State = StateLinked
	} else {
		status.State = StateStale
	}
	return status
}

// Diff returns a line-based diff between the deployed file and its
// resolved source, for files in the unsynced state. An empty string
// means the contents match (or no comparison is possible).
func (r *Reporter) Diff(file config.ManagedFile) string {
	source, err := r.resolver.Resolve(file.Name)
	if err != nil {
		return ""
	}

	target := r.paths.TargetPath(file.TargetName())
	deployed, err := os.ReadFile(target)
	if err != nil {
		return ""
	}
	wanted, err := os.ReadFile(source)
	if err != nil {
		return ""
	}

	return cmp.Diff(
		strings.Split(string(deployed), "\n"),
		strings.Split(string(wanted), "\n"),
	)
}
