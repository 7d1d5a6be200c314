package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lineage-sh/lineage/internal/source"
	"github.com/lineage-sh/lineage/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
	GitPath  string
	Name     string
}

// importResult summarizes a completed import.
type importResult struct {
	RepositoryID string `json:"repository_id"`
	Name         string `json:"name"`
	Commits      int64  `json:"commits"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a repository's commits into the store",
		Long: `Decode every commit object of a local repository and persist the records
and parent edges. Imports are idempotent: re-running one only writes
commits that are not stored yet.

Examples:
  lineage import --db ./lineage.db --git /path/to/repo --name origin
  lineage import --git /path/to/repo --name origin --config lineage.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config)")
	cmd.Flags().StringVar(&opts.GitPath, "git", "", "path to the repository to import (required)")
	_ = cmd.MarkFlagRequired("git")
	cmd.Flags().StringVar(&opts.Name, "name", "", "repository name in the store (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
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

	repo, imported, err := source.NewImporter(st).Import(context.Background(), opts.GitPath, opts.Name)
	if err != nil {
		return WrapExitError(ExitFailure, "import failed", err)
	}

	result := importResult{RepositoryID: repo.ID, Name: repo.Name, Commits: imported}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d commits into repository %s (%s)\n",
		result.Commits, result.Name, result.RepositoryID)
	return nil
}
