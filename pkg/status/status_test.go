package status

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/resolver"
	"github.com/arthur-debert/rigup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	home     string
	defaults string
	paths    *paths.Paths
	resolver *resolver.Resolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	root := t.TempDir()
	defaults := testutil.CreateDir(t, root, "default")

	p, err := paths.New(root)
	require.NoError(t, err)

	return &testEnv{
		home:     home,
		defaults: defaults,
		paths:    p,
		resolver: resolver.New([]string{defaults}),
	}
}

func (e *testEnv) reporter(files []config.ManagedFile) *Reporter {
	return New(e.paths, e.resolver, files)
}

func TestReportLinked(t *testing.T) {
	env := newTestEnv(t)
	source := testutil.CreateFile(t, env.defaults, ".zshrc", "content")
	testutil.CreateSymlink(t, source, filepath.Join(env.home, ".zshrc"))

	report := env.reporter([]config.ManagedFile{{Name: ".zshrc"}}).Report()

	require.Len(t, report.Files, 1)
	assert.Equal(t, StateLinked, report.Files[0].State)
	assert.Equal(t, source, report.Files[0].ActualTarget)
	assert.True(t, report.Clean())
}

func TestReportStale(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateFile(t, env.defaults, ".zshrc", "content")
	other := testutil.CreateFile(t, t.TempDir(), "elsewhere", "other")
	testutil.CreateSymlink(t, other, filepath.Join(env.home, ".zshrc"))

	report := env.reporter([]config.ManagedFile{{Name: ".zshrc"}}).Report()

	assert.Equal(t, StateStale, report.Files[0].State)
	assert.Equal(t, other, report.Files[0].ActualTarget)
	assert.False(t, report.Clean())
}

func TestReportUnsynced(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateFile(t, env.defaults, ".zshrc", "source")
	testutil.CreateFile(t, env.home, ".zshrc", "deployed by hand")

	report := env.reporter([]config.ManagedFile{{Name: ".zshrc"}}).Report()

	assert.Equal(t, StateUnsynced, report.Files[0].State)
}

func TestReportMissing(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateFile(t, env.defaults, ".zshrc", "source")

	report := env.reporter([]config.ManagedFile{{Name: ".zshrc"}}).Report()

	assert.Equal(t, StateMissing, report.Files[0].State)
}

func TestReportSourceMissing(t *testing.T) {
	env := newTestEnv(t)

	report := env.reporter([]config.ManagedFile{{Name: ".vimrc"}}).Report()

	assert.Equal(t, StateSourceMissing, report.Files[0].State)
	assert.Empty(t, report.Files[0].Source)
}

func TestDiffShowsContentDrift(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateFile(t, env.defaults, ".zshrc", "line one\nline two\n")
	testutil.CreateFile(t, env.home, ".zshrc", "line one\nline changed\n")

	reporter := env.reporter([]config.ManagedFile{{Name: ".zshrc"}})
	diff := reporter.Diff(config.ManagedFile{Name: ".zshrc"})

	assert.NotEmpty(t, diff)
	assert.Contains(t, diff, "line changed")
}

func TestDiffEmptyWhenIdentical(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateFile(t, env.defaults, ".zshrc", "same\n")
	testutil.CreateFile(t, env.home, ".zshrc", "same\n")

	reporter := env.reporter([]config.ManagedFile{{Name: ".zshrc"}})

	assert.Empty(t, reporter.Diff(config.ManagedFile{Name: ".zshrc"}))
}
