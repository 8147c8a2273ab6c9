package cmd

import (
	"fmt"

	"github.com/harrison/harvest/internal/config"
	"github.com/harrison/harvest/internal/display"
	"github.com/harrison/harvest/internal/fileutil"
	"github.com/spf13/cobra"
)

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "List the files a set of patterns selects",
		Long: `List the files under a directory that a harvest with the same
--include and --exclude patterns would pick up, without generating anything.

Examples:
  harvest match dist --include '**/*.dll' --exclude 'obj/**'`,
		Args: cobra.ExactArgs(1),
		RunE: runMatch,
	}

	cmd.Flags().StringArray("include", nil, "Glob pattern of files to match (repeatable)")
	cmd.Flags().StringArray("exclude", nil, "Glob pattern of files or directories to skip (repeatable)")
	cmd.Flags().Bool("ignore-case", false, "Match patterns case-insensitively")

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	includes, _ := cmd.Flags().GetStringArray("include")
	excludes, _ := cmd.Flags().GetStringArray("exclude")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")

	opts := fileutil.ScanOptions{
		Includes:   config.SplitPatterns(includes),
		Excludes:   config.SplitPatterns(excludes),
		IgnoreCase: ignoreCase,
	}
	if len(opts.Includes) == 0 {
		display.WarnNoIncludes(args[0]).Display(cmd.ErrOrStderr())
	}

	result, err := fileutil.ScanDirectory(args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", args[0], err)
	}

	files := result.Relative()
	progress := display.NewProgressIndicator(cmd.OutOrStdout(), len(files))
	progress.Start(result.Root)
	for _, rel := range files {
		progress.Step(rel)
	}
	progress.Complete()

	return nil
}
