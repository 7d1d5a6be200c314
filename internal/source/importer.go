package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lineage-sh/lineage/internal/object"
	"github.com/lineage-sh/lineage/internal/store"
)

// Importer decodes and persists every commit of a repository.
type Importer struct {
	store   *store.Store
	decoder object.Decoder
}

// NewImporter creates an importer writing to st, decoding at SHA-1 widths.
func NewImporter(st *store.Store) *Importer {
	return &Importer{store: st, decoder: object.NewDecoder(object.HashSHA1)}
}

// Import registers the repository at path under name and writes one record
// per commit object, parent edges included. A decode failure aborts the
// import: a commit that cannot be decoded must never be silently skipped,
// or ancestor counts over the persisted edges would be wrong.
//
// Re-running an import is safe; writes are idempotent.
func (im *Importer) Import(ctx context.Context, path, name string) (store.Repository, int64, error) {
	scanner, err := OpenScanner(path)
	if err != nil {
		return store.Repository{}, 0, err
	}

	repo, err := im.store.CreateRepository(ctx, name)
	if err != nil {
		return store.Repository{}, 0, err
	}

	slog.Info("import starting", "repository", name, "path", path)

	var imported int64
	err = scanner.ForEachCommit(func(rc RawCommit) error {
		record, err := im.decoder.Decode(rc.Raw)
		if err != nil {
			return fmt.Errorf("decode commit %s: %w", rc.Oid, err)
		}
		if err := im.store.WriteCommit(ctx, repo.ID, rc.Oid, record); err != nil {
			return err
		}
		imported++
		slog.Debug("commit imported", "oid", rc.Oid.String(), "parents", len(record.ParentIDs))
		return nil
	})
	if err != nil {
		return store.Repository{}, 0, fmt.Errorf("import %s: %w", name, err)
	}

	slog.Info("import finished", "repository", name, "commits", imported)
	return repo, imported, nil
}
