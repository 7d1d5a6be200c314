// Package source supplies raw commit object bytes from real repositories
// and drives imports into the store.
//
// go-git serves purely as the object store here: it opens the repository and
// iterates encoded commit objects, but every object body is handed to
// internal/object undecoded. Decoding stays in one place so the store only
// ever sees records produced by our decoder.
package source

import (
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/lineage-sh/lineage/internal/object"
)

// RawCommit is one commit's identity plus its undecoded object body.
type RawCommit struct {
	Oid object.Oid
	Raw []byte
}

// Scanner iterates the commit objects of an on-disk repository.
type Scanner struct {
	repo *git.Repository
}

// OpenScanner opens the repository at path (plain or bare).
func OpenScanner(path string) (*Scanner, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &Scanner{repo: repo}, nil
}

// ForEachCommit streams every commit object's raw bytes to fn. Iteration
// stops at the first error fn returns.
func (s *Scanner) ForEachCommit(fn func(RawCommit) error) error {
	iter, err := s.repo.Storer.IterEncodedObjects(plumbing.CommitObject)
	if err != nil {
		return fmt.Errorf("iterate commit objects: %w", err)
	}
	defer iter.Close()

	return iter.ForEach(func(obj plumbing.EncodedObject) error {
		reader, err := obj.Reader()
		if err != nil {
			return fmt.Errorf("open object %s: %w", obj.Hash(), err)
		}
		raw, err := io.ReadAll(reader)
		if closeErr := reader.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("read object %s: %w", obj.Hash(), err)
		}

		hash := obj.Hash()
		return fn(RawCommit{Oid: object.Oid(hash[:]), Raw: raw})
	})
}
