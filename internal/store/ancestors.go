package store

import (
	"context"
	"fmt"

	"github.com/lineage-sh/lineage/internal/object"
)

// QueryError wraps a failure of the ancestor-count query layer. It is an
// opaque pass-through: callers surface it verbatim and must not interpret
// or retry it.
type QueryError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("graph query failed: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying driver error for errors.Is/As chains.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// CountAncestors returns the number of commits strictly reachable from the
// given commit by following parent edges within one repository.
//
// The walk is delegated to SQLite's recursive CTE evaluation. UNION (not
// UNION ALL) deduplicates the ancestor set, so commits reachable via
// multiple paths of a merge diamond count exactly once. The root commit
// itself is excluded by construction: the base case starts at its parents.
func (s *Store) CountAncestors(ctx context.Context, repositoryID string, oid object.Oid) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		WITH RECURSIVE ancestors(oid) AS (
			SELECT parent_oid
			FROM commit_parents
			WHERE repository_id = ?1 AND oid = ?2
			UNION
			SELECT cp.parent_oid
			FROM commit_parents cp
			JOIN ancestors a ON cp.oid = a.oid
			WHERE cp.repository_id = ?1
		)
		SELECT COUNT(*) FROM ancestors
	`, repositoryID, []byte(oid)).Scan(&count)
	if err != nil {
		return 0, &QueryError{Op: "count ancestors", Err: err}
	}
	return count, nil
}
