package harvest

import (
	"fmt"

	"github.com/harrison/harvest/internal/fileutil"
)

// InvalidPatternError is returned when an include or exclude pattern is malformed.
type InvalidPatternError = fileutil.InvalidPatternError

// ExpectedDirectoryError is returned when the harvest root names a file.
type ExpectedDirectoryError struct {
	Path string
}

// Error implements the error interface.
func (e *ExpectedDirectoryError) Error() string {
	return fmt.Sprintf("expected a directory but %s is a file", e.Path)
}

// DirectoryNotFoundError is returned when the root, or a directory discovered
// during traversal, does not exist.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Err
}

// EmptyHarvestError is returned when nothing was harvested and empty
// directories are not being kept.
type EmptyHarvestError struct {
	Path string
}

// Error implements the error interface.
func (e *EmptyHarvestError) Error() string {
	return fmt.Sprintf("no files were harvested from %s; check the include and exclude patterns or keep empty directories", e.Path)
}

// FileHarvestError is returned when an eligible file cannot be read.
type FileHarvestError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileHarvestError) Error() string {
	return fmt.Sprintf("failed to harvest file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *FileHarvestError) Unwrap() error {
	return e.Err
}

// UnsupportedModeError is returned for generation modes that cannot be harvested.
type UnsupportedModeError struct {
	Mode GenerationMode
	// Name is set when the mode failed to parse.
	Name string
}

// Error implements the error interface.
func (e *UnsupportedModeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown generation mode %q (valid: components, container, packagegroup, payloadgroup)", e.Name)
	}
	return fmt.Sprintf("generation mode %s is not supported for directory harvesting", e.Mode)
}
