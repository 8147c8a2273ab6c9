// Package config loads harvest settings from .harvest/config.yaml and merges
// them with command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/harvest/internal/fileutil"
	"github.com/harrison/harvest/internal/harvest"
	"github.com/harrison/harvest/internal/output"
	"gopkg.in/yaml.v3"
)

// Config represents harvest configuration options
type Config struct {
	// Include lists glob patterns selecting files (entries may be semicolon-separated)
	Include []string `yaml:"include"`

	// Exclude lists glob patterns rejecting files (entries may be semicolon-separated)
	Exclude []string `yaml:"exclude"`

	// IgnoreCase matches patterns case-insensitively
	IgnoreCase bool `yaml:"ignore_case"`

	// DirectoryRef is the id of the directory the harvest is attached to
	DirectoryRef string `yaml:"directory_ref"`

	// KeepEmptyDirectories keeps directories that harvest no files
	KeepEmptyDirectories bool `yaml:"keep_empty_directories"`

	// SuppressRootDirectory drops the harvested root directory element
	SuppressRootDirectory bool `yaml:"suppress_root_directory"`

	// SuppressUniqueIDs leaves all generated ids unset
	SuppressUniqueIDs bool `yaml:"suppress_unique_ids"`

	// Generate selects the generation mode (components, container, packagegroup, payloadgroup)
	Generate string `yaml:"generate"`

	// SourceVariable replaces SourceDir in sources, e.g. var.AppDir
	SourceVariable string `yaml:"source_variable"`

	// ComponentGUIDs selects component GUID generation (none, auto, now)
	ComponentGUIDs string `yaml:"component_guids"`

	// OutputFormat selects the serialization format (wxs, yaml)
	OutputFormat string `yaml:"output_format"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Timeout bounds a whole harvest (0 = no limit)
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DirectoryRef:   harvest.DefaultRootReferenceID,
		Generate:       "components",
		ComponentGUIDs: "none",
		OutputFormat:   string(output.FormatWXS),
		LogLevel:       "info",
		Timeout:        0,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		Include               []string `yaml:"include"`
		Exclude               []string `yaml:"exclude"`
		IgnoreCase            bool     `yaml:"ignore_case"`
		DirectoryRef          string   `yaml:"directory_ref"`
		KeepEmptyDirectories  bool     `yaml:"keep_empty_directories"`
		SuppressRootDirectory bool     `yaml:"suppress_root_directory"`
		SuppressUniqueIDs     bool     `yaml:"suppress_unique_ids"`
		Generate              string   `yaml:"generate"`
		SourceVariable        string   `yaml:"source_variable"`
		ComponentGUIDs        string   `yaml:"component_guids"`
		OutputFormat          string   `yaml:"output_format"`
		LogLevel              string   `yaml:"log_level"`
		Timeout               string   `yaml:"timeout"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if len(yamlCfg.Include) > 0 {
		cfg.Include = yamlCfg.Include
	}
	if len(yamlCfg.Exclude) > 0 {
		cfg.Exclude = yamlCfg.Exclude
	}
	if yamlCfg.DirectoryRef != "" {
		cfg.DirectoryRef = yamlCfg.DirectoryRef
	}
	if yamlCfg.Generate != "" {
		cfg.Generate = yamlCfg.Generate
	}
	if yamlCfg.SourceVariable != "" {
		cfg.SourceVariable = yamlCfg.SourceVariable
	}
	if yamlCfg.ComponentGUIDs != "" {
		cfg.ComponentGUIDs = yamlCfg.ComponentGUIDs
	}
	if yamlCfg.OutputFormat != "" {
		cfg.OutputFormat = yamlCfg.OutputFormat
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	cfg.IgnoreCase = yamlCfg.IgnoreCase
	cfg.KeepEmptyDirectories = yamlCfg.KeepEmptyDirectories
	cfg.SuppressRootDirectory = yamlCfg.SuppressRootDirectory
	cfg.SuppressUniqueIDs = yamlCfg.SuppressUniqueIDs

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .harvest/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".harvest", "config.yaml")
	return LoadConfig(configPath)
}

// Overrides carries command-line values. Nil fields leave the configuration untouched.
type Overrides struct {
	Include               []string
	Exclude               []string
	IgnoreCase            *bool
	DirectoryRef          *string
	KeepEmptyDirectories  *bool
	SuppressRootDirectory *bool
	SuppressUniqueIDs     *bool
	Generate              *string
	SourceVariable        *string
	ComponentGUIDs        *string
	OutputFormat          *string
	LogLevel              *string
	Timeout               *time.Duration
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Include != nil {
		c.Include = o.Include
	}
	if o.Exclude != nil {
		c.Exclude = o.Exclude
	}
	if o.IgnoreCase != nil {
		c.IgnoreCase = *o.IgnoreCase
	}
	if o.DirectoryRef != nil {
		c.DirectoryRef = *o.DirectoryRef
	}
	if o.KeepEmptyDirectories != nil {
		c.KeepEmptyDirectories = *o.KeepEmptyDirectories
	}
	if o.SuppressRootDirectory != nil {
		c.SuppressRootDirectory = *o.SuppressRootDirectory
	}
	if o.SuppressUniqueIDs != nil {
		c.SuppressUniqueIDs = *o.SuppressUniqueIDs
	}
	if o.Generate != nil {
		c.Generate = *o.Generate
	}
	if o.SourceVariable != nil {
		c.SourceVariable = *o.SourceVariable
	}
	if o.ComponentGUIDs != nil {
		c.ComponentGUIDs = *o.ComponentGUIDs
	}
	if o.OutputFormat != nil {
		c.OutputFormat = *o.OutputFormat
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if _, err := harvest.ParseGenerationMode(c.Generate); err != nil {
		return err
	}

	if _, ok := harvest.ParseGUIDPolicy(c.ComponentGUIDs); !ok {
		return fmt.Errorf("invalid component_guids %q, must be one of: none, auto, now", c.ComponentGUIDs)
	}

	if _, err := output.ParseFormat(c.OutputFormat); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if strings.ContainsAny(c.DirectoryRef, " \t") {
		return fmt.Errorf("directory_ref %q must not contain spaces", c.DirectoryRef)
	}

	// Surface malformed patterns before touching the file system
	if _, err := fileutil.NewMatcher(fileutil.ScanOptions{
		Includes:   SplitPatterns(c.Include),
		Excludes:   SplitPatterns(c.Exclude),
		IgnoreCase: c.IgnoreCase,
	}); err != nil {
		return err
	}

	return nil
}

// HarvestConfig converts the configuration into the immutable input of a
// harvest rooted at root. Call Validate first.
func (c *Config) HarvestConfig(root string) (harvest.Config, error) {
	mode, err := harvest.ParseGenerationMode(c.Generate)
	if err != nil {
		return harvest.Config{}, err
	}
	guids, ok := harvest.ParseGUIDPolicy(c.ComponentGUIDs)
	if !ok {
		return harvest.Config{}, fmt.Errorf("invalid component_guids %q", c.ComponentGUIDs)
	}

	hc := harvest.DefaultConfig(root)
	hc.Includes = SplitPatterns(c.Include)
	hc.Excludes = SplitPatterns(c.Exclude)
	hc.IgnoreCase = c.IgnoreCase
	hc.RootReferenceID = c.DirectoryRef
	hc.KeepEmptyDirectories = c.KeepEmptyDirectories
	hc.SuppressRootDirectory = c.SuppressRootDirectory
	hc.SetUniqueIdentifiers = !c.SuppressUniqueIDs
	hc.Mode = mode
	hc.SourceVariable = c.SourceVariable
	hc.ComponentGUIDs = guids
	return hc, nil
}

// SplitPatterns splits semicolon-joined entries into separate patterns and
// drops blanks, so "**/*.dll;**/*.exe" and two separate entries are equivalent.
func SplitPatterns(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, p := range strings.Split(entry, ";") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
