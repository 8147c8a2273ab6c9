// Package harvest turns a directory tree into authoring elements.
//
// Harvest is a pure function of its Config and the file system: it scans the
// root once to compute the eligible-file set, walks the tree depth-first,
// and wraps the result in a single Fragment. Errors abort the whole harvest;
// no partial result is ever returned.
package harvest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrison/harvest/internal/fileutil"
	"github.com/harrison/harvest/internal/ident"
	"github.com/harrison/harvest/internal/models"
)

// Harvest harvests cfg.RootPath using the stat-based file harvester.
func Harvest(cfg Config) (*models.Fragment, error) {
	return HarvestWith(cfg, NewStatFileHarvester())
}

// HarvestWith harvests cfg.RootPath, delegating per-file inspection to files.
func HarvestWith(cfg Config, files FileHarvester) (*models.Fragment, error) {
	if !cfg.Mode.Supported() {
		return nil, &UnsupportedModeError{Mode: cfg.Mode}
	}
	if files == nil {
		files = NewStatFileHarvester()
	}

	given, root, err := resolveRoot(cfg.RootPath)
	if err != nil {
		return nil, err
	}

	eligible, err := fileutil.ScanDirectory(root, fileutil.ScanOptions{
		Includes:   cfg.Includes,
		Excludes:   cfg.Excludes,
		IgnoreCase: cfg.IgnoreCase,
	})
	if err != nil {
		var patErr *InvalidPatternError
		if errors.As(err, &patErr) {
			return nil, err
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DirectoryNotFoundError{Path: missingPath(err, root), Err: err}
		}
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	b := &treeBuilder{
		cfg:      cfg,
		eligible: eligible,
		files:    files,
	}

	rootRef := cfg.rootReferenceID()

	var parent models.Parent
	if cfg.Mode.usesDirectories() {
		dir := &models.Directory{
			Name:       filepath.Base(given),
			FileSource: root,
		}
		if cfg.SetUniqueIdentifiers {
			if cfg.SuppressRootDirectory {
				dir.ID = ident.Generate(ident.DirectoryPrefix, rootRef)
			} else {
				dir.ID = ident.Generate(ident.DirectoryPrefix, rootRef, dir.Name)
			}
		}
		parent = dir
	} else {
		parent = &models.PayloadGroup{}
	}

	count, err := b.buildTree(root, cfg.sourcePrefix(), parent)
	if err != nil {
		return nil, err
	}

	if cfg.Mode.usesDirectories() && count == 0 && !cfg.KeepEmptyDirectories {
		return nil, &EmptyHarvestError{Path: given}
	}

	return assemble(cfg, rootRef, parent), nil
}

// resolveRoot enforces the root policies and returns the absolute root as
// given along with its symlink-free form. The scan and the walk both use the
// resolved form so eligible paths and walked paths agree.
func resolveRoot(path string) (string, string, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", &DirectoryNotFoundError{Path: root, Err: err}
		}
		return "", "", fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", "", &ExpectedDirectoryError{Path: root}
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", &DirectoryNotFoundError{Path: root, Err: err}
		}
		return "", "", fmt.Errorf("failed to resolve links in %s: %w", root, err)
	}

	return root, resolved, nil
}

// missingPath returns the path named by the file-system error behind err,
// or fallback when err carries none.
func missingPath(err error, fallback string) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Path != "" {
		return pathErr.Path
	}
	return fallback
}

// assemble wraps the built tree in its root container and fragment.
func assemble(cfg Config, rootRef string, parent models.Parent) *models.Fragment {
	fragment := &models.Fragment{}

	switch root := parent.(type) {
	case *models.PayloadGroup:
		root.ID = rootRef
		fragment.AddChild(root)
	case *models.Directory:
		ref := &models.DirectoryRef{ID: rootRef}
		if cfg.SuppressRootDirectory {
			for _, child := range root.Children {
				ref.AddChild(child)
			}
		} else {
			ref.AddChild(root)
		}
		fragment.AddChild(ref)
	}

	return fragment
}
