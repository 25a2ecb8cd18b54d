package commands

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/installer/agentcli"
	"github.com/arthur-debert/rigup/pkg/installer/dotfiles"
	"github.com/arthur-debert/rigup/pkg/installer/ohmyzsh"
	"github.com/arthur-debert/rigup/pkg/status"
	"github.com/arthur-debert/rigup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstaller struct {
	name       string
	installed  bool
	installErr error
}

func (f *fakeInstaller) Name() string        { return f.name }
func (f *fakeInstaller) Description() string { return "fake " + f.name }
func (f *fakeInstaller) IsInstalled() bool   { return f.installed }
func (f *fakeInstaller) Install() error {
	if f.installErr != nil {
		return f.installErr
	}
	f.installed = true
	return nil
}
func (f *fakeInstaller) Update() error {
	if !f.installed {
		return errors.New(errors.ErrNotInstalled, "not installed")
	}
	return nil
}
func (f *fakeInstaller) Uninstall() error { f.installed = false; return nil }

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	root := t.TempDir()
	testutil.CreateDir(t, root, "personal")
	defaults := testutil.CreateDir(t, root, "default")
	testutil.CreateFile(t, defaults, ".zshrc", "export EDITOR=vim")
	testutil.CreateFile(t, defaults, ".gitconfig", "[user]")
	testutil.CreateFile(t, defaults, "custom-agent.md", "# notes")

	app, err := NewApp(root)
	require.NoError(t, err)
	return app, home
}

func TestNewAppRegistersComponentsInOrder(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, []string{
		ohmyzsh.ComponentName,
		agentcli.ComponentName,
		dotfiles.ComponentName,
	}, app.Registry().Names())
}

func TestInstallDotfilesComponent(t *testing.T) {
	app, home := newTestApp(t)

	results := app.Install(dotfiles.ComponentName)

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.False(t, Failed(results))
	assert.True(t, testutil.SymlinkExists(t, filepath.Join(home, ".zshrc")))
}

func TestInstallUnknownComponent(t *testing.T) {
	app, _ := newTestApp(t)

	results := app.Install("no-such-thing")

	require.Len(t, results, 1)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrComponentUnknown))
	assert.True(t, Failed(results))
}

func TestInstallAllContinuesPastFailures(t *testing.T) {
	app, _ := newTestApp(t)

	// Replace the real installers with fakes; registration keeps order
	failing := &fakeInstaller{
		name:       ohmyzsh.ComponentName,
		installErr: errors.New(errors.ErrPrerequisiteMissing, "zsh missing"),
	}
	app.registry.Register(failing)
	app.registry.Register(&fakeInstaller{name: agentcli.ComponentName})
	ok := &fakeInstaller{name: dotfiles.ComponentName}
	app.registry.Register(ok)

	results := app.Install(All)

	require.Len(t, results, 3)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrPrerequisiteMissing))
	assert.NoError(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.True(t, ok.installed)
	assert.True(t, Failed(results))
}

func TestUpdateUnknownComponent(t *testing.T) {
	app, _ := newTestApp(t)

	result := app.Update("no-such-thing")

	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrComponentUnknown))
}

func TestUpdateBeforeInstall(t *testing.T) {
	app, _ := newTestApp(t)

	result := app.Update(dotfiles.ComponentName)

	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrNotInstalled))
}

func TestUninstallRestoresDotfiles(t *testing.T) {
	app, home := newTestApp(t)
	testutil.CreateFile(t, home, ".zshrc", "OLD")

	require.False(t, Failed(app.Install(dotfiles.ComponentName)))
	result := app.Uninstall(dotfiles.ComponentName)
	require.NoError(t, result.Err)

	assert.Equal(t, "OLD", testutil.ReadFile(t, filepath.Join(home, ".zshrc")))
}

func TestStatusReport(t *testing.T) {
	app, _ := newTestApp(t)

	report := app.Status()
	require.Len(t, report.Files, 3)
	for _, f := range report.Files {
		assert.Equal(t, status.StateMissing, f.State)
	}

	require.False(t, Failed(app.Install(dotfiles.ComponentName)))

	report = app.Status()
	assert.True(t, report.Clean())
}

func TestDiffUnknownFile(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := app.Diff(".nope")

	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestDiffShowsDrift(t *testing.T) {
	app, home := newTestApp(t)
	testutil.CreateFile(t, home, ".zshrc", "export EDITOR=emacs")

	diff, err := app.Diff(".zshrc")

	require.NoError(t, err)
	assert.NotEmpty(t, diff)
}
