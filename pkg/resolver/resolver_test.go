package resolver

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLayers(t *testing.T) (personal, defaults string, r *Resolver) {
	t.Helper()
	root := t.TempDir()
	personal = testutil.CreateDir(t, root, "personal")
	defaults = testutil.CreateDir(t, root, "default")
	return personal, defaults, New([]string{personal, defaults})
}

func TestResolvePersonalWinsOverDefault(t *testing.T) {
	personal, defaults, r := newTestLayers(t)
	testutil.CreateFile(t, personal, ".zshrc", "personal config")
	testutil.CreateFile(t, defaults, ".zshrc", "default config")

	source, err := r.Resolve(".zshrc")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(personal, ".zshrc"), source)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	_, defaults, r := newTestLayers(t)
	testutil.CreateFile(t, defaults, ".gitconfig", "[user]")

	source, err := r.Resolve(".gitconfig")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(defaults, ".gitconfig"), source)
}

func TestResolveMissingEverywhere(t *testing.T) {
	_, _, r := newTestLayers(t)

	_, err := r.Resolve(".vimrc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestResolveIgnoresDirectories(t *testing.T) {
	personal, defaults, r := newTestLayers(t)
	testutil.CreateDir(t, personal, ".zshrc")
	testutil.CreateFile(t, defaults, ".zshrc", "default config")

	source, err := r.Resolve(".zshrc")
	require.NoError(t, err)

	// A directory named like the file does not shadow the real source
	assert.Equal(t, filepath.Join(defaults, ".zshrc"), source)
}

func TestKnownSourcesListsAllLayers(t *testing.T) {
	personal, defaults, r := newTestLayers(t)
	testutil.CreateFile(t, personal, ".zshrc", "personal")
	testutil.CreateFile(t, defaults, ".zshrc", "default")

	sources := r.KnownSources(".zshrc")

	assert.Equal(t, []string{
		filepath.Join(personal, ".zshrc"),
		filepath.Join(defaults, ".zshrc"),
	}, sources)
}

func TestKnownSourcesEmptyWhenAbsent(t *testing.T) {
	_, _, r := newTestLayers(t)

	assert.Empty(t, r.KnownSources(".vimrc"))
}
