package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineage-sh/lineage/internal/gittest"
	"github.com/lineage-sh/lineage/internal/graph"
	"github.com/lineage-sh/lineage/internal/object"
)

// seedGraph writes the given child -> parents edges into both the store and
// an in-memory reference graph, so tests can assert the recursive SQL agrees
// with the fallback traversal semantics.
func seedGraph(t *testing.T, s *Store, edges map[byte][]byte) (string, *graph.Memory) {
	t.Helper()
	ctx := context.Background()

	repo, err := s.CreateRepository(ctx, "origin")
	require.NoError(t, err)

	ref := graph.NewMemory()
	for child, parents := range edges {
		oids := make([]object.Oid, len(parents))
		for i, p := range parents {
			oids[i] = gittest.Oid(p)
		}
		require.NoError(t, s.WriteCommit(ctx, repo.ID, gittest.Oid(child), testRecord(oids...)))
		ref.AddCommit(repo.ID, gittest.Oid(child), oids)
	}
	return repo.ID, ref
}

func TestCountAncestors_Chain(t *testing.T) {
	// A <- B <- C
	s := openTestStore(t)
	repoID, ref := seedGraph(t, s, map[byte][]byte{
		'A': nil,
		'B': {'A'},
		'C': {'B'},
	})
	ctx := context.Background()

	for root, want := range map[byte]int64{'C': 2, 'B': 1, 'A': 0} {
		n, err := s.CountAncestors(ctx, repoID, gittest.Oid(root))
		require.NoError(t, err)
		assert.Equal(t, want, n, "root %c", root)

		refN, err := ref.CountAncestors(ctx, repoID, gittest.Oid(root))
		require.NoError(t, err)
		assert.Equal(t, refN, n, "store disagrees with reference at root %c", root)
	}
}

func TestCountAncestors_DiamondNotDoubleCounted(t *testing.T) {
	// A <- B <- D and A <- C <- D
	s := openTestStore(t)
	repoID, ref := seedGraph(t, s, map[byte][]byte{
		'A': nil,
		'B': {'A'},
		'C': {'A'},
		'D': {'B', 'C'},
	})
	ctx := context.Background()

	n, err := s.CountAncestors(ctx, repoID, gittest.Oid('D'))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	refN, err := ref.CountAncestors(ctx, repoID, gittest.Oid('D'))
	require.NoError(t, err)
	assert.Equal(t, refN, n)
}

func TestCountAncestors_DeepHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repo, err := s.CreateRepository(ctx, "origin")
	require.NoError(t, err)

	// Linear history of 200 commits.
	require.NoError(t, s.WriteCommit(ctx, repo.ID, seqOid(0), testRecord()))
	for i := 1; i < 200; i++ {
		require.NoError(t, s.WriteCommit(ctx, repo.ID, seqOid(i), testRecord(seqOid(i-1))))
	}

	n, err := s.CountAncestors(ctx, repo.ID, seqOid(199))
	require.NoError(t, err)
	assert.Equal(t, int64(199), n)
}

func TestCountAncestors_RepositoriesAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repoA, err := s.CreateRepository(ctx, "a")
	require.NoError(t, err)
	repoB, err := s.CreateRepository(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, s.WriteCommit(ctx, repoA.ID, gittest.Oid('A'), testRecord()))
	require.NoError(t, s.WriteCommit(ctx, repoA.ID, gittest.Oid('B'), testRecord(gittest.Oid('A'))))
	require.NoError(t, s.WriteCommit(ctx, repoB.ID, gittest.Oid('B'), testRecord()))

	n, err := s.CountAncestors(ctx, repoB.ID, gittest.Oid('B'))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCountAncestors_UnknownCommit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repo, err := s.CreateRepository(ctx, "origin")
	require.NoError(t, err)

	n, err := s.CountAncestors(ctx, repo.ID, gittest.Oid(0xff))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCountAncestors_ClosedStoreReturnsQueryError(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.CountAncestors(context.Background(), "repo", gittest.Oid('A'))
	require.Error(t, err)

	var qe *QueryError
	assert.True(t, errors.As(err, &qe), "want *QueryError, got %T", err)
}

// seqOid spreads an integer across the oid bytes so deep-history tests can
// mint more than 256 distinct oids.
func seqOid(i int) object.Oid {
	oid := make([]byte, 20)
	oid[0] = byte(i >> 8)
	oid[1] = byte(i)
	return object.Oid(oid)
}
