package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitobject "github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineage-sh/lineage/internal/object"
	"github.com/lineage-sh/lineage/internal/store"
)

// initRepo creates a throwaway repository with a two-commit history and
// returns its path plus the head oid.
func initRepo(t *testing.T) (string, object.Oid) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	sig := &gitobject.Signature{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		When:  time.Unix(1609459200, 0),
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644))
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("first\n", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("two\n"), 0o644))
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	head, err := wt.Commit("second\n", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	return dir, object.Oid(head[:])
}

func TestScanner_ForEachCommit(t *testing.T) {
	dir, head := initRepo(t)

	scanner, err := OpenScanner(dir)
	require.NoError(t, err)

	decoded := make(map[string]object.CommitRecord)
	err = scanner.ForEachCommit(func(rc RawCommit) error {
		record, err := object.DecodeCommit(rc.Raw)
		if err != nil {
			return err
		}
		decoded[rc.Oid.String()] = record
		return nil
	})
	require.NoError(t, err)

	require.Len(t, decoded, 2)
	headRecord, ok := decoded[head.String()]
	require.True(t, ok, "head commit not scanned")
	assert.Equal(t, "second\n", headRecord.Message)
	assert.Equal(t, "Jane Doe", headRecord.AuthorName)
	assert.Equal(t, "jane@example.com", headRecord.AuthorEmail)
	assert.Len(t, headRecord.ParentIDs, 1)
}

func TestOpenScanner_MissingRepository(t *testing.T) {
	_, err := OpenScanner(t.TempDir())
	require.Error(t, err)
}

func TestImporter_Import(t *testing.T) {
	dir, head := initRepo(t)

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	repo, imported, err := NewImporter(st).Import(ctx, dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), imported)

	// The persisted edges answer the ancestor query: head has one ancestor.
	n, err := st.CountAncestors(ctx, repo.ID, head)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestImporter_Rerun(t *testing.T) {
	dir, _ := initRepo(t)

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	first, _, err := NewImporter(st).Import(ctx, dir, "origin")
	require.NoError(t, err)
	second, _, err := NewImporter(st).Import(ctx, dir, "origin")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	count, err := st.CountCommits(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
