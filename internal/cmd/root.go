package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for harvest
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest directory trees into installer authoring fragments",
		Long: `Harvest walks a directory tree and generates a WiX authoring fragment
describing it: nested Directory elements, one Component per file, or a flat
PayloadGroup for bundles.

Files are selected with glob include and exclude patterns. Identifiers are
derived from each element's position in the tree, so harvesting the same
tree twice produces identical output.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewDirCommand())
	cmd.AddCommand(NewMatchCommand())

	return cmd
}
