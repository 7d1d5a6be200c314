package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lineage-sh/lineage/internal/object"
)

// Repository is one imported repository.
type Repository struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// CreateRepository registers a repository under a fresh UUID and returns it.
// Repository names are unique; reusing a name returns the existing row.
func (s *Store) CreateRepository(ctx context.Context, name string) (Repository, error) {
	repo := Repository{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO repositories (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, repo.ID, repo.Name, repo.CreatedAt.Unix())
	if err != nil {
		return Repository{}, fmt.Errorf("create repository: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Repository{}, fmt.Errorf("create repository: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Name already taken - hand back the existing repository.
		return s.FindRepositoryByName(ctx, name)
	}

	return repo, nil
}

// FindRepositoryByName looks a repository up by its unique name.
// Returns sql.ErrNoRows if not found.
func (s *Store) FindRepositoryByName(ctx context.Context, name string) (Repository, error) {
	var repo Repository
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM repositories WHERE name = ?
	`, name).Scan(&repo.ID, &repo.Name, &createdAt)
	if err != nil {
		return Repository{}, err
	}
	repo.CreatedAt = time.Unix(createdAt, 0).UTC()
	return repo, nil
}

// WriteCommit persists a decoded commit record and its parent edges in a
// single transaction. Commits are content-addressed, so the write is
// idempotent: a commit already present is silently left untouched, parent
// edges included (re-decoding identical bytes cannot produce different
// edges).
func (s *Store) WriteCommit(ctx context.Context, repositoryID string, oid object.Oid, record object.CommitRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write commit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO commits
		(repository_id, oid, author_name, author_email, message, committed_at, gpg_key_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repository_id, oid) DO NOTHING
	`,
		repositoryID,
		[]byte(oid),
		record.AuthorName,
		record.AuthorEmail,
		record.Message,
		record.CommittedAt.Unix(),
		record.GPGKeyID, // nil stores NULL for unsigned commits
	)
	if err != nil {
		return fmt.Errorf("write commit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write commit: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Already stored; edges are immutable alongside the record.
		return tx.Commit()
	}

	for position, parent := range record.ParentIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO commit_parents (repository_id, oid, position, parent_oid)
			VALUES (?, ?, ?, ?)
		`, repositoryID, []byte(oid), position, []byte(parent))
		if err != nil {
			return fmt.Errorf("write commit: parent %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write commit: commit tx: %w", err)
	}

	return nil
}
