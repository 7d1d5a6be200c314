// Package store provides SQLite-backed persistence for decoded commit
// metadata and parent edges, and answers ancestor-count queries over them.
//
// Layout:
//   - repositories: one row per imported repository (UUID identity)
//   - commits: decoded commit records, keyed by (repository_id, oid)
//   - commit_parents: ordered parent edges; position preserves first-parent
//     lineage exactly as decoded
//
// Commit objects are content-addressed and immutable, so every write is
// idempotent (ON CONFLICT DO NOTHING) and nothing is ever updated in place.
//
// Ancestor counts are computed server-side with a recursive CTE; see
// ancestors.go. Query failures surface as *QueryError, an opaque
// pass-through the caller must not interpret.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during imports
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: parent edges require their commit row
package store
