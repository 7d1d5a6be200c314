package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lineage-sh/lineage/internal/object"
)

// DecodeOptions holds flags for the decode command.
type DecodeOptions struct {
	*RootOptions
	File string
	Hash string
}

// decodeResult is the output projection of a decoded commit record.
type decodeResult struct {
	Parents     []string `json:"parents"`
	Message     string   `json:"message"`
	AuthorName  string   `json:"author_name"`
	AuthorEmail string   `json:"author_email"`
	CommittedAt string   `json:"committed_at"`
	GPGKeyID    string   `json:"gpg_key_id,omitempty"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a raw loose commit object",
		Long: `Decode the raw bytes of a loose commit object into a structured record.

The input file must contain the uncompressed commit object body: header
lines, one blank line, then the message. Identity (repository, oid) is not
part of the body and is not printed.

Examples:
  lineage decode --file commit.raw
  lineage decode --file commit.raw --format json
  lineage decode --file commit.raw --hash sha256`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "path to raw commit object (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&opts.Hash, "hash", "", "object id algorithm (sha1|sha256)")

	return cmd
}

func runDecode(opts *DecodeOptions, cmd *cobra.Command) error {
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

	raw, err := os.ReadFile(opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read object file", err)
	}

	record, err := object.NewDecoder(algo).Decode(raw)
	if err != nil {
		return WrapExitError(ExitFailure, "decode failed", err)
	}

	result := newDecodeResult(record)
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Author:    %s <%s>\n", result.AuthorName, result.AuthorEmail)
	fmt.Fprintf(w, "Date:      %s\n", result.CommittedAt)
	if len(result.Parents) == 0 {
		fmt.Fprintln(w, "Parents:   (root commit)")
	} else {
		for i, p := range result.Parents {
			if i == 0 {
				fmt.Fprintf(w, "Parents:   %s\n", p)
			} else {
				fmt.Fprintf(w, "           %s\n", p)
			}
		}
	}
	if result.GPGKeyID != "" {
		fmt.Fprintf(w, "Signed by: %s\n", result.GPGKeyID)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, result.Message)
	return nil
}

func newDecodeResult(record object.CommitRecord) decodeResult {
	parents := make([]string, 0, len(record.ParentIDs))
	for _, p := range record.ParentIDs {
		parents = append(parents, p.String())
	}
	return decodeResult{
		Parents:     parents,
		Message:     record.Message,
		AuthorName:  record.AuthorName,
		AuthorEmail: record.AuthorEmail,
		CommittedAt: record.CommittedAt.Format(time.RFC3339),
		GPGKeyID:    hex.EncodeToString(record.GPGKeyID),
	}
}
