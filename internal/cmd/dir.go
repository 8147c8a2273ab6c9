package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/harvest/internal/config"
	"github.com/harrison/harvest/internal/display"
	"github.com/harrison/harvest/internal/harvest"
	"github.com/harrison/harvest/internal/logger"
	"github.com/harrison/harvest/internal/models"
	"github.com/harrison/harvest/internal/output"
	"github.com/spf13/cobra"
)

// NewDirCommand creates the dir command
func NewDirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir <path>",
		Short: "Harvest a directory into an authoring fragment",
		Long: `Harvest a directory tree into a WiX fragment.

Only files matching at least one --include pattern and no --exclude pattern
are harvested. Patterns are globs relative to the harvested directory and use
forward slashes: * matches within a path segment, ** spans segments, ? matches
one character and {a,b} matches alternatives. Several patterns may be joined
with ';'.

Configuration is loaded from .harvest/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Harvest every file below dist into a component tree
  harvest dir dist --include '**/*'

  # Skip debug symbols and keep empty directories
  harvest dir dist --include '**/*' --exclude '**/*.pdb' --ke

  # Reference files through a preprocessor variable
  harvest dir dist --include '**/*' --var DistDir --out dist.wxs

  # Flat payload group for a bundle
  harvest dir dist --include '**/*' --generate payloadgroup --dr DistPayloads`,
		Args: cobra.ExactArgs(1),
		RunE: runDir,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .harvest/config.yaml)")
	cmd.Flags().StringArray("include", nil, "Glob pattern of files to harvest (repeatable)")
	cmd.Flags().StringArray("exclude", nil, "Glob pattern of files or directories to skip (repeatable)")
	cmd.Flags().Bool("ignore-case", false, "Match patterns case-insensitively")
	cmd.Flags().String("dr", "", "Id of the DirectoryRef (or PayloadGroup) to harvest into (default: TARGETDIR)")
	cmd.Flags().Bool("ke", false, "Keep empty directories")
	cmd.Flags().Bool("srd", false, "Suppress the root directory element")
	cmd.Flags().Bool("suid", false, "Suppress unique identifiers for files, components and directories")
	cmd.Flags().String("generate", "", "Element type to generate: components or payloadgroup")
	cmd.Flags().String("var", "", "Preprocessor variable substituted for SourceDir in File sources")
	cmd.Flags().Bool("ag", false, "Use Guid=\"*\" on generated components")
	cmd.Flags().Bool("gg", false, "Generate a stable Guid on each component")
	cmd.Flags().String("format", "", "Output format: wxs or yaml")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress log output")
	cmd.Flags().String("timeout", "", "Maximum harvest time (e.g., 30s, 5m)")

	return cmd
}

// runDir implements the dir command logic
func runDir(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	overrides, err := dirOverrides(cmd)
	if err != nil {
		return err
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(overrides)

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	root := args[0]
	harvestCfg, err := cfg.HarvestConfig(root)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	format, err := output.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	var log logger.Logger = logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		log = logger.NewNoOpLogger()
	}

	if len(harvestCfg.Includes) == 0 {
		display.WarnNoIncludes(root).Display(cmd.ErrOrStderr())
	}

	log.LogDebug(fmt.Sprintf("Harvesting %s (generate=%s, guids=%s, directory_ref=%s)",
		root, harvestCfg.Mode, harvestCfg.ComponentGUIDs, cfg.DirectoryRef))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	fragment, err := harvestWithContext(ctx, harvestCfg)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}
	summary := models.Summarize(fragment)
	log.LogHarvestSummary(root, summary, time.Since(start))
	for _, f := range models.Files(fragment) {
		log.LogDebug(fmt.Sprintf("Harvested %s", f.Source))
	}
	if summary.Harvested() == 0 {
		log.LogWarn(fmt.Sprintf("No files were harvested from %s", root))
	} else if summary.Placeholders > 0 {
		log.LogWarn(fmt.Sprintf("Kept %d empty directories as CreateFolder placeholders", summary.Placeholders))
	}

	data, err := output.Encode(fragment, format)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if err := output.Emit(cmd.OutOrStdout(), outPath, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if outPath != "" && outPath != "-" {
		log.LogInfo(fmt.Sprintf("Wrote %s", outPath))
	}

	return nil
}

// harvestWithContext runs the harvest and gives up when ctx is done.
// The harvest itself is not interruptible; on timeout its result is discarded.
func harvestWithContext(ctx context.Context, cfg harvest.Config) (*models.Fragment, error) {
	type outcome struct {
		fragment *models.Fragment
		err      error
	}

	done := make(chan outcome, 1)
	go func() {
		fragment, err := harvest.Harvest(cfg)
		done <- outcome{fragment, err}
	}()

	select {
	case o := <-done:
		return o.fragment, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("harvesting %s: %w", cfg.RootPath, ctx.Err())
	}
}

// loadConfig loads the file named by --config, or .harvest/config.yaml in
// the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// dirOverrides collects the flags that were set explicitly.
func dirOverrides(cmd *cobra.Command) (config.Overrides, error) {
	var o config.Overrides
	flags := cmd.Flags()

	if flags.Changed("ag") && flags.Changed("gg") {
		return o, fmt.Errorf("cannot use both --ag and --gg")
	}

	if flags.Changed("include") {
		o.Include, _ = flags.GetStringArray("include")
	}
	if flags.Changed("exclude") {
		o.Exclude, _ = flags.GetStringArray("exclude")
	}

	boolFlags := map[string]**bool{
		"ignore-case": &o.IgnoreCase,
		"ke":          &o.KeepEmptyDirectories,
		"srd":         &o.SuppressRootDirectory,
		"suid":        &o.SuppressUniqueIDs,
	}
	for name, dst := range boolFlags {
		if flags.Changed(name) {
			v, _ := flags.GetBool(name)
			*dst = &v
		}
	}

	stringFlags := map[string]**string{
		"dr":        &o.DirectoryRef,
		"generate":  &o.Generate,
		"var":       &o.SourceVariable,
		"format":    &o.OutputFormat,
		"log-level": &o.LogLevel,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = &v
		}
	}

	var guids string
	if ag, _ := flags.GetBool("ag"); ag {
		guids = harvest.GUIDAuto.String()
	}
	if gg, _ := flags.GetBool("gg"); gg {
		guids = harvest.GUIDNow.String()
	}
	if guids != "" {
		o.ComponentGUIDs = &guids
	}

	if flags.Changed("timeout") {
		timeoutStr, _ := flags.GetString("timeout")
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return o, fmt.Errorf("invalid timeout format %q: %w", timeoutStr, err)
		}
		o.Timeout = &timeout
	}

	return o, nil
}
