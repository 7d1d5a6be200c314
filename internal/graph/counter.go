package graph

import (
	"context"

	"github.com/lineage-sh/lineage/internal/object"
)

// AncestorCounter answers ancestor-count queries for one commit at a time.
//
// Implementations perform at most one blocking call per invocation, hold no
// locks across calls, and are safe for concurrent use on independent
// (repository, oid) pairs. Failures are terminal for the call: no retries,
// no partial results.
type AncestorCounter interface {
	// CountAncestors returns the number of commits strictly reachable from
	// the given commit via parent edges, within one repository.
	CountAncestors(ctx context.Context, repositoryID string, oid object.Oid) (int64, error)
}
