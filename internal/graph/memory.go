package graph

import (
	"context"
	"sync"

	"github.com/lineage-sh/lineage/internal/object"
)

// Memory is an in-process AncestorCounter over explicitly registered parent
// edges. It implements the transitive-closure fallback for graphs that are
// not persisted behind a recursive-query engine, and doubles as the
// reference implementation in tests.
//
// Thread-safety: AddCommit and CountAncestors may be called concurrently;
// a read-write mutex guards the edge map.
type Memory struct {
	mu sync.RWMutex

	// edges maps repository id -> commit oid (string form) -> parent oids.
	edges map[string]map[string][]object.Oid
}

// NewMemory creates an empty in-memory commit graph.
func NewMemory() *Memory {
	return &Memory{edges: make(map[string]map[string][]object.Oid)}
}

// AddCommit registers a commit and its parent edges. Registering the same
// commit again replaces its edges; commit graphs are append-only in practice
// so this only matters for test setup.
func (m *Memory) AddCommit(repositoryID string, oid object.Oid, parents []object.Oid) {
	m.mu.Lock()
	defer m.mu.Unlock()

	repo, ok := m.edges[repositoryID]
	if !ok {
		repo = make(map[string][]object.Oid)
		m.edges[repositoryID] = repo
	}
	repo[oid.String()] = append([]object.Oid(nil), parents...)
}

// CountAncestors walks the parent edges breadth-first, counting each
// reachable commit once. A parent referenced but never registered still
// counts: reachability is defined by edges, not by record presence.
func (m *Memory) CountAncestors(ctx context.Context, repositoryID string, oid object.Oid) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	repo := m.edges[repositoryID]
	if repo == nil {
		return 0, nil
	}

	seen := make(map[string]bool)
	queue := append([]object.Oid(nil), repo[oid.String()]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		key := next.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		queue = append(queue, repo[key]...)
	}

	return int64(len(seen)), nil
}
