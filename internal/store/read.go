package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lineage-sh/lineage/internal/object"
)

// ReadCommit retrieves a decoded commit record by identity.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadCommit(ctx context.Context, repositoryID string, oid object.Oid) (object.CommitRecord, error) {
	var record object.CommitRecord
	var committedAt int64
	var keyID []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT author_name, author_email, message, committed_at, gpg_key_id
		FROM commits
		WHERE repository_id = ? AND oid = ?
	`, repositoryID, []byte(oid)).Scan(
		&record.AuthorName, &record.AuthorEmail, &record.Message, &committedAt, &keyID,
	)
	if err != nil {
		return object.CommitRecord{}, err
	}

	record.CommittedAt = time.Unix(committedAt, 0).UTC()
	if len(keyID) > 0 {
		record.GPGKeyID = keyID
	}

	parents, err := s.ListParents(ctx, repositoryID, oid)
	if err != nil {
		return object.CommitRecord{}, err
	}
	record.ParentIDs = parents

	return record, nil
}

// ListParents returns a commit's parent oids in first-parent order.
// Returns an empty slice for root commits and unknown commits alike.
func (s *Store) ListParents(ctx context.Context, repositoryID string, oid object.Oid) ([]object.Oid, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT parent_oid
		FROM commit_parents
		WHERE repository_id = ? AND oid = ?
		ORDER BY position ASC
	`, repositoryID, []byte(oid))
	if err != nil {
		return nil, fmt.Errorf("query parents: %w", err)
	}
	defer rows.Close()

	var parents []object.Oid
	for rows.Next() {
		var parent []byte
		if err := rows.Scan(&parent); err != nil {
			return nil, fmt.Errorf("scan parent: %w", err)
		}
		parents = append(parents, object.Oid(parent))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parents: %w", err)
	}

	return parents, nil
}

// CountCommits returns the number of commits stored for a repository.
func (s *Store) CountCommits(ctx context.Context, repositoryID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM commits WHERE repository_id = ?
	`, repositoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	return count, nil
}
