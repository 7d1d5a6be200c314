package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/lineage-sh/lineage/internal/cache"
	"github.com/lineage-sh/lineage/internal/graph"
	"github.com/lineage-sh/lineage/internal/object"
	"github.com/lineage-sh/lineage/internal/store"
)

// AncestorsOptions holds flags for the ancestors command.
type AncestorsOptions struct {
	*RootOptions
	Database  string
	Repo      string
	Oid       string
	Hash      string
	RedisAddr string
}

// ancestorsResult is the output of an ancestor-count query.
type ancestorsResult struct {
	RepositoryID string `json:"repository_id"`
	Oid          string `json:"oid"`
	Ancestors    int64  `json:"ancestors"`
}

// NewAncestorsCommand creates the ancestors command.
func NewAncestorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AncestorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ancestors",
		Short: "Count a commit's ancestors",
		Long: `Count the commits reachable from a given commit by following parent
edges in the persisted graph. Each ancestor counts once, however many
merge paths lead to it; the commit itself is excluded.

Examples:
  lineage ancestors --db ./lineage.db --repo <id> --oid 4f0e...
  lineage ancestors --repo <id> --oid 4f0e... --redis localhost:6379`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAncestors(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config)")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "repository id (required)")
	_ = cmd.MarkFlagRequired("repo")
	cmd.Flags().StringVar(&opts.Oid, "oid", "", "commit oid in hex (required)")
	_ = cmd.MarkFlagRequired("oid")
	cmd.Flags().StringVar(&opts.Hash, "hash", "", "object id algorithm (sha1|sha256)")
	cmd.Flags().StringVar(&opts.RedisAddr, "redis", "", "redis address for count caching (defaults to config)")

	return cmd
}

func runAncestors(opts *AncestorsOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	algo := cfg.HashAlgorithm()
	if opts.Hash != "" {
		algo = object.HashAlgorithm(opts.Hash)
		if algo.Width() == 0 {
			return WrapExitError(ExitCommandError, fmt.Sprintf("unknown hash algorithm %q", opts.Hash), nil)
		}
	}

	oid, err := object.ParseOid(opts.Oid, algo)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid oid", err)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var counter graph.AncestorCounter = st
	redisAddr := opts.RedisAddr
	if redisAddr == "" {
		redisAddr = cfg.Redis.Addr
	}
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()
		counter = cache.NewCounts(client, st, cache.WithTTL(time.Duration(cfg.Redis.TTL)))
	}

	count, err := counter.CountAncestors(context.Background(), opts.Repo, oid)
	if err != nil {
		return WrapExitError(ExitFailure, "ancestor query failed", err)
	}

	result := ancestorsResult{RepositoryID: opts.Repo, Oid: oid.String(), Ancestors: count}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d\n", result.Ancestors)
	return nil
}
