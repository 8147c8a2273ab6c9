package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/harrison/harvest/internal/harvest"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DirectoryRef != "TARGETDIR" {
		t.Errorf("DirectoryRef = %q, want %q", cfg.DirectoryRef, "TARGETDIR")
	}
	if cfg.Generate != "components" {
		t.Errorf("Generate = %q, want %q", cfg.Generate, "components")
	}
	if cfg.OutputFormat != "wxs" {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, "wxs")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", cfg.Timeout)
	}
	if len(cfg.Include) != 0 {
		t.Errorf("Include = %v, want empty", cfg.Include)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `include:
  - "**/*.dll;**/*.exe"
  - "**/*.config"
exclude:
  - "**/*.pdb"
directory_ref: INSTALLFOLDER
keep_empty_directories: true
suppress_root_directory: true
generate: payloadgroup
source_variable: var.AppDir
component_guids: now
output_format: yaml
log_level: debug
timeout: 30s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.Include, []string{"**/*.dll;**/*.exe", "**/*.config"}) {
		t.Errorf("Include = %v", cfg.Include)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"**/*.pdb"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.DirectoryRef != "INSTALLFOLDER" {
		t.Errorf("DirectoryRef = %q, want INSTALLFOLDER", cfg.DirectoryRef)
	}
	if !cfg.KeepEmptyDirectories || !cfg.SuppressRootDirectory {
		t.Errorf("boolean options not loaded: %+v", cfg)
	}
	if cfg.SuppressUniqueIDs {
		t.Errorf("SuppressUniqueIDs = true, want false")
	}
	if cfg.Generate != "payloadgroup" {
		t.Errorf("Generate = %q, want payloadgroup", cfg.Generate)
	}
	if cfg.SourceVariable != "var.AppDir" {
		t.Errorf("SourceVariable = %q, want var.AppDir", cfg.SourceVariable)
	}
	if cfg.ComponentGUIDs != "now" {
		t.Errorf("ComponentGUIDs = %q, want now", cfg.ComponentGUIDs)
	}
	if cfg.OutputFormat != "yaml" {
		t.Errorf("OutputFormat = %q, want yaml", cfg.OutputFormat)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestLoadConfigMissingFile returns defaults when the file does not exist
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, ".harvest")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("directory_ref: APPDIR\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.DirectoryRef != "APPDIR" {
		t.Errorf("DirectoryRef = %q, want APPDIR", cfg.DirectoryRef)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unset keys should keep defaults, LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "include: [unclosed\n"},
		{"bad timeout", "timeout: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = []string{"**/*"}
	cfg.KeepEmptyDirectories = true

	ref := "INSTALLDIR"
	suid := true
	keep := false
	timeout := time.Minute

	cfg.MergeWithFlags(Overrides{
		Exclude:              []string{"*.log"},
		DirectoryRef:         &ref,
		SuppressUniqueIDs:    &suid,
		KeepEmptyDirectories: &keep,
		Timeout:              &timeout,
	})

	if !reflect.DeepEqual(cfg.Include, []string{"**/*"}) {
		t.Errorf("Include should be untouched, got %v", cfg.Include)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"*.log"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.DirectoryRef != "INSTALLDIR" {
		t.Errorf("DirectoryRef = %q", cfg.DirectoryRef)
	}
	if !cfg.SuppressUniqueIDs {
		t.Errorf("SuppressUniqueIDs should be overridden")
	}
	if cfg.KeepEmptyDirectories {
		t.Errorf("KeepEmptyDirectories should be overridden to false")
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Generate != "components" {
		t.Errorf("Generate should be untouched, got %q", cfg.Generate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown mode", func(c *Config) { c.Generate = "registry" }, true},
		{"container parses", func(c *Config) { c.Generate = "container" }, false},
		{"bad guid policy", func(c *Config) { c.ComponentGUIDs = "always" }, true},
		{"bad format", func(c *Config) { c.OutputFormat = "json" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"upper case log level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"spaces in directory ref", func(c *Config) { c.DirectoryRef = "MY DIR" }, true},
		{"bad include", func(c *Config) { c.Include = []string{"ok/*;[bad"} }, true},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"{a,b"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsPatternErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = []string{"[bad"}

	var patErr *harvest.InvalidPatternError
	if err := cfg.Validate(); !errors.As(err, &patErr) {
		t.Fatalf("expected InvalidPatternError, got %v", err)
	}
	if patErr.Pattern != "[bad" {
		t.Errorf("Pattern = %q, want [bad", patErr.Pattern)
	}
}

func TestHarvestConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = []string{"**/*.dll; **/*.exe", ""}
	cfg.Exclude = []string{"**/*.pdb"}
	cfg.SuppressUniqueIDs = true
	cfg.Generate = "PayloadGroup"
	cfg.ComponentGUIDs = "auto"
	cfg.SourceVariable = "var.Dist"

	hc, err := cfg.HarvestConfig("/dist")
	if err != nil {
		t.Fatalf("HarvestConfig() error = %v", err)
	}

	want := harvest.Config{
		RootPath:             "/dist",
		Includes:             []string{"**/*.dll", "**/*.exe"},
		Excludes:             []string{"**/*.pdb"},
		RootReferenceID:      "TARGETDIR",
		SetUniqueIdentifiers: false,
		Mode:                 harvest.ModePayloadGroup,
		SourceVariable:       "var.Dist",
		ComponentGUIDs:       harvest.GUIDAuto,
	}
	if !reflect.DeepEqual(hc, want) {
		t.Errorf("HarvestConfig() = %+v, want %+v", hc, want)
	}

	cfg.Generate = "nonsense"
	if _, err := cfg.HarvestConfig("/dist"); err == nil {
		t.Errorf("expected error for unknown generation mode")
	}
}

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"a;b;c"}, []string{"a", "b", "c"}},
		{[]string{"a", "b;c"}, []string{"a", "b", "c"}},
		{[]string{" a ; ;b"}, []string{"a", "b"}},
		{[]string{";;"}, nil},
	}

	for _, tt := range tests {
		if got := SplitPatterns(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPatterns(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
