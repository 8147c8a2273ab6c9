package harvest

import (
	"strings"
)

// DefaultRootReferenceID is the directory reference used when none is configured.
const DefaultRootReferenceID = "TARGETDIR"

// SourceDirPrefix is the conventional root of relative source references.
const SourceDirPrefix = `SourceDir\`

// GUIDPolicy controls the Guid attribute of generated components.
type GUIDPolicy int

const (
	// GUIDNone leaves component GUIDs unset.
	GUIDNone GUIDPolicy = iota
	// GUIDAuto asks the packager to generate GUIDs at build time ("*").
	GUIDAuto
	// GUIDNow assigns a name-based GUID derived from each component's source.
	GUIDNow
)

// String returns the string representation of GUIDPolicy.
func (p GUIDPolicy) String() string {
	switch p {
	case GUIDNone:
		return "none"
	case GUIDAuto:
		return "auto"
	case GUIDNow:
		return "now"
	default:
		return "unknown"
	}
}

// ParseGUIDPolicy parses none, auto or now. An empty name selects GUIDNone.
func ParseGUIDPolicy(name string) (GUIDPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return GUIDNone, true
	case "auto":
		return GUIDAuto, true
	case "now":
		return GUIDNow, true
	default:
		return GUIDNone, false
	}
}

// Config is the immutable input of a single harvest.
type Config struct {
	// RootPath is the directory to harvest.
	RootPath string
	// Includes lists glob patterns selecting files; an empty list selects nothing.
	Includes []string
	// Excludes lists glob patterns rejecting files; excludes win over includes.
	Excludes []string
	// IgnoreCase matches patterns case-insensitively.
	IgnoreCase bool
	// RootReferenceID is the id of the top container (DefaultRootReferenceID if empty).
	RootReferenceID string
	// KeepEmptyDirectories retains directories without harvested files.
	KeepEmptyDirectories bool
	// SuppressRootDirectory attaches the root's children directly to the reference.
	SuppressRootDirectory bool
	// SetUniqueIdentifiers enables deterministic id synthesis.
	SetUniqueIdentifiers bool
	// Mode selects the generated element shapes.
	Mode GenerationMode
	// SourceVariable replaces SourceDir in source references, e.g. "var.AppDir".
	SourceVariable string
	// ComponentGUIDs controls component Guid attributes.
	ComponentGUIDs GUIDPolicy
}

// DefaultConfig returns a Config for root with unique identifiers enabled
// and no patterns.
func DefaultConfig(root string) Config {
	return Config{
		RootPath:             root,
		RootReferenceID:      DefaultRootReferenceID,
		SetUniqueIdentifiers: true,
		Mode:                 ModeComponents,
	}
}

func (c Config) rootReferenceID() string {
	if c.RootReferenceID == "" {
		return DefaultRootReferenceID
	}
	return c.RootReferenceID
}

// sourcePrefix returns the prefix of every relative source reference,
// always ending in a backslash.
func (c Config) sourcePrefix() string {
	v := strings.TrimSpace(c.SourceVariable)
	if v == "" {
		return SourceDirPrefix
	}
	v = strings.TrimSuffix(strings.TrimPrefix(v, "$("), ")")
	if !strings.Contains(v, ".") {
		v = "var." + v
	}
	return "$(" + v + `)\`
}
