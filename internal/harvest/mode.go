package harvest

import (
	"strings"
)

// GenerationMode selects which element shapes a harvest produces.
type GenerationMode int

const (
	// ModeComponents generates Directory/Component/File authoring.
	ModeComponents GenerationMode = iota
	// ModeContainer generates a bundle Container with payloads.
	ModeContainer
	// ModePackageGroup generates bundle PackageGroups.
	ModePackageGroup
	// ModePayloadGroup generates a single PayloadGroup with payloads.
	ModePayloadGroup
)

// String returns the string representation of GenerationMode.
func (m GenerationMode) String() string {
	switch m {
	case ModeComponents:
		return "components"
	case ModeContainer:
		return "container"
	case ModePackageGroup:
		return "packagegroup"
	case ModePayloadGroup:
		return "payloadgroup"
	default:
		return "unknown"
	}
}

// Supported reports whether Harvest implements the mode.
func (m GenerationMode) Supported() bool {
	return m == ModeComponents || m == ModePayloadGroup
}

// usesDirectories reports whether the mode emits Directory elements and
// therefore has empty-directory semantics.
func (m GenerationMode) usesDirectories() bool {
	return m != ModePayloadGroup
}

// ParseGenerationMode parses a mode name case-insensitively.
// An empty name selects ModeComponents.
func ParseGenerationMode(name string) (GenerationMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "components":
		return ModeComponents, nil
	case "container":
		return ModeContainer, nil
	case "packagegroup":
		return ModePackageGroup, nil
	case "payloadgroup":
		return ModePayloadGroup, nil
	default:
		return 0, &UnsupportedModeError{Name: name}
	}
}
