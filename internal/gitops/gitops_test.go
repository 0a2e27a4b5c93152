package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir))

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir))
}

func TestHasChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	dirty, err := HasChanges(dir)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "statements.csv"), []byte("id\n"), 0o644))
	dirty, err = HasChanges(dir)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestCommitAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "statements.csv"), []byte("id\n"), 0o644))

	hash, err := CommitAll(dir, "import: jan.csv", "Settled", "bot@settled.dev")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "import: jan.csv|Settled <bot@settled.dev>")
}

func TestCommitAll_CleanTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	_, err := CommitAll(dir, "first", "Settled", "bot@settled.dev")
	require.NoError(t, err)

	_, err = CommitAll(dir, "second", "Settled", "bot@settled.dev")
	assert.ErrorIs(t, err, ErrNothingToCommit)
}
