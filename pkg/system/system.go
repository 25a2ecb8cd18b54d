// Package system gathers facts about the host machine: platform,
// distribution, available package manager and prerequisite commands.
// Everything here is read-only.
package system

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// MinFreeBytes is the free disk space required under the home
// directory before installs are allowed to proceed (1 GiB).
const MinFreeBytes = 1 << 30

// Info describes the host environment
type Info struct {
	Platform     string
	Architecture string
}

// NewInfo gathers basic host information
func NewInfo() *Info {
	return &Info{
		Platform:     runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

// IsLinux reports whether the host runs Linux
func (i *Info) IsLinux() bool {
	return i.Platform == "linux"
}

// IsMacOS reports whether the host runs macOS
func (i *Info) IsMacOS() bool {
	return i.Platform == "darwin"
}

// IsWSL reports whether the host is Windows Subsystem for Linux
func (i *Info) IsWSL() bool {
	if !i.IsLinux() {
		return false
	}
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// Distribution returns the Linux distribution ID from /etc/os-release,
// or an empty string when it cannot be determined.
func (i *Info) Distribution() string {
	if !i.IsLinux() {
		return ""
	}

	data, err := os.ReadFile("/etc/os-release")
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "ID=") {
				return strings.Trim(strings.TrimPrefix(line, "ID="), `"`)
			}
		}
	}

	// lsb_release fallback for older distributions
	out, err := exec.Command("lsb_release", "-si").Output()
	if err == nil {
		return strings.ToLower(strings.TrimSpace(string(out)))
	}

	return ""
}

// PackageManager probes for a known system package manager and returns
// its name, or an empty string if none is found.
func (i *Info) PackageManager() string {
	for _, manager := range []string{"apt-get", "dnf", "yum", "pacman", "zypper", "brew"} {
		if CommandExists(manager) {
			return manager
		}
	}
	return ""
}

// Shell returns the user's login shell
func (i *Info) Shell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}

// CommandExists reports whether a command is available on the PATH
func CommandExists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}

// MissingCommands returns the subset of commands not found on the PATH
func MissingCommands(commands ...string) []string {
	var missing []string
	for _, cmd := range commands {
		if !CommandExists(cmd) {
			missing = append(missing, cmd)
		}
	}
	return missing
}

// HasSufficientDiskSpace reports whether the filesystem holding path
// has at least MinFreeBytes free. It errs on the side of proceeding
// when the check itself fails.
func HasSufficientDiskSpace(path string) bool {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return true
	}
	free := stat.Bavail * uint64(stat.Bsize)
	return free >= MinFreeBytes
}
