package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternKind identifies which pattern list a pattern came from.
type PatternKind string

const (
	// PatternInclude marks a pattern from the include list.
	PatternInclude PatternKind = "include"
	// PatternExclude marks a pattern from the exclude list.
	PatternExclude PatternKind = "exclude"
)

// InvalidPatternError is returned when an include or exclude pattern is malformed.
type InvalidPatternError struct {
	Pattern string
	Kind    PatternKind
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q", e.Kind, e.Pattern)
}

// ScanOptions configures the eligible-file scan
type ScanOptions struct {
	// Includes lists glob patterns a file must match at least one of
	Includes []string
	// Excludes lists glob patterns that reject a file (or a whole directory)
	Excludes []string
	// IgnoreCase folds patterns and paths to lower case before matching
	IgnoreCase bool
}

// ScanResult contains the results of an eligible-file scan
type ScanResult struct {
	// Root is the absolute scan root with symbolic links resolved
	Root string
	// Files contains the absolute paths of all eligible files, sorted
	Files []string

	set map[string]struct{}
}

// Contains reports whether the absolute path is in the eligible set.
func (r *ScanResult) Contains(path string) bool {
	if r == nil {
		return false
	}
	_, ok := r.set[path]
	return ok
}

// Len returns the number of eligible files.
func (r *ScanResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Files)
}

// Relative returns the eligible files relative to Root, "/"-separated.
func (r *ScanResult) Relative() []string {
	out := make([]string, 0, r.Len())
	if r == nil {
		return out
	}
	for _, f := range r.Files {
		rel, err := filepath.Rel(r.Root, f)
		if err != nil {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// Matcher evaluates compiled include and exclude patterns against root-relative paths.
type Matcher struct {
	includes   []string
	excludes   []string
	ignoreCase bool
}

// NewMatcher validates and normalizes the patterns in opts.
func NewMatcher(opts ScanOptions) (*Matcher, error) {
	includes, err := normalizePatterns(opts.Includes, PatternInclude, opts.IgnoreCase)
	if err != nil {
		return nil, err
	}
	excludes, err := normalizePatterns(opts.Excludes, PatternExclude, opts.IgnoreCase)
	if err != nil {
		return nil, err
	}
	return &Matcher{
		includes:   includes,
		excludes:   excludes,
		ignoreCase: opts.IgnoreCase,
	}, nil
}

// Match reports whether a root-relative file path is eligible.
func (m *Matcher) Match(rel string) bool {
	rel = m.normalizePath(rel)
	return matchAny(m.includes, rel) && !matchAny(m.excludes, rel)
}

// ExcludesDir reports whether a root-relative directory path is pruned by an exclude pattern.
func (m *Matcher) ExcludesDir(rel string) bool {
	return matchAny(m.excludes, m.normalizePath(rel))
}

func (m *Matcher) normalizePath(rel string) string {
	rel = filepath.ToSlash(rel)
	if m.ignoreCase {
		rel = strings.ToLower(rel)
	}
	return rel
}

// ScanDirectory walks dir and returns the set of files eligible under opts.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	matcher, err := NewMatcher(opts)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	// WalkDir does not follow a linked root, so walk its target instead
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}

	result := &ScanResult{
		Root:  root,
		Files: make([]string, 0),
		set:   make(map[string]struct{}),
	}

	// An empty include list can never select anything
	if len(matcher.includes) == 0 {
		return result, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}

		if d.IsDir() {
			if matcher.ExcludesDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// Links are never followed; only links to readable files count
			target, err := os.Stat(path)
			if err != nil || target.IsDir() {
				return nil
			}
		}

		if matcher.Match(rel) {
			result.Files = append(result.Files, path)
			result.set[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)

	return result, nil
}

// normalizePatterns strips leading "./" and "/" and validates each pattern.
// Blank entries are dropped.
func normalizePatterns(patterns []string, kind PatternKind, ignoreCase bool) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		pat := strings.TrimSpace(raw)
		if runtime.GOOS == "windows" {
			pat = filepath.ToSlash(pat)
		}
		for strings.HasPrefix(pat, "./") {
			pat = strings.TrimPrefix(pat, "./")
		}
		pat = strings.TrimLeft(pat, "/")
		if pat == "" {
			continue
		}
		if ignoreCase {
			pat = strings.ToLower(pat)
		}
		if !doublestar.ValidatePattern(pat) {
			return nil, &InvalidPatternError{Pattern: raw, Kind: kind}
		}
		out = append(out, pat)
	}
	return out, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}
