// Package fileutil computes the set of files eligible for harvesting.
//
// A scan walks a root directory once and evaluates every file against two
// ordered lists of glob patterns. A file is eligible when it matches at least
// one include pattern and no exclude pattern. Exclusion always wins.
//
// # Pattern Syntax
//
// Patterns are matched against the path relative to the scan root, using "/"
// as the separator on every platform. Matching is delegated to
// github.com/bmatcuk/doublestar/v4:
//   - "*" matches any run of characters within a single path segment
//   - "?" matches exactly one non-separator character
//   - "**" matches zero or more whole path segments
//   - "{a,b}" and "[abc]" behave as in doublestar
//
// "*.txt" therefore only selects files directly under the root, while
// "**/*.txt" selects them at any depth, including the root itself.
//
// An exclude pattern that matches a directory removes that directory's whole
// subtree from the scan, so "bin" or "**/obj" prune entire trees without
// needing a trailing "/**".
//
// # Usage
//
//	result, err := fileutil.ScanDirectory("/path/to/dist", fileutil.ScanOptions{
//	    Includes: []string{"**/*"},
//	    Excludes: []string{"**/*.pdb", "obj"},
//	})
//	if err != nil {
//	    return err
//	}
//	if result.Contains("/path/to/dist/app.exe") {
//	    // harvest it
//	}
//
// An empty include list selects nothing. Supplying at least one include
// pattern is the caller's responsibility.
//
// # Determinism
//
// Directory listings are read in sorted order and the result's Files slice is
// sorted, so repeated scans of an unchanged tree yield identical results.
// Symbolic links are never followed: a link to a file is treated as a file,
// while links to directories and dangling links are skipped.
package fileutil
