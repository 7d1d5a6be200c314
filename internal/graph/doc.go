// Package graph defines ancestor-counting semantics over commit parent edges.
//
// The count for a commit is the cardinality of the set of commits strictly
// reachable by repeatedly following parent edges, each reachable commit
// counted exactly once regardless of how many paths lead to it. The root
// commit itself is excluded. Merge diamonds therefore never double-count.
//
// Two implementations satisfy the contract: the SQLite store's recursive
// query (the production path) and the in-process Memory fallback for graphs
// not backed by a recursive-query engine. The Memory implementation is the
// reference the store's tests agree with.
package graph
