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

// treeBuilder holds the read-only state shared by one harvest's traversal.
type treeBuilder struct {
	cfg      Config
	eligible *fileutil.ScanResult
	files    FileHarvester
}

// buildTree harvests path into parent and returns the number of files
// harvested beneath it. relative is the source reference of path and ends
// with a backslash.
//
// In directory modes parent is the *models.Directory for path. In
// payload-group mode every level shares the same *models.PayloadGroup.
func (b *treeBuilder) buildTree(path, relative string, parent models.Parent) (int, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, &DirectoryNotFoundError{Path: path, Err: err}
		}
		return 0, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	dir, _ := parent.(*models.Directory)
	fileCount := 0

	// Subdirectories first, each fully resolved before the next sibling
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		childPath := filepath.Join(path, entry.Name())
		childRelative := relative + entry.Name() + `\`

		if dir == nil {
			n, err := b.buildTree(childPath, childRelative, parent)
			if err != nil {
				return 0, err
			}
			fileCount += n
			continue
		}

		child := &models.Directory{
			Name:       entry.Name(),
			FileSource: childPath,
		}
		if b.cfg.SetUniqueIdentifiers {
			child.ID = ident.Generate(ident.DirectoryPrefix, dir.ID, child.Name)
		}

		n, err := b.buildTree(childPath, childRelative, child)
		if err != nil {
			return 0, err
		}

		if n > 0 || b.cfg.KeepEmptyDirectories {
			dir.AddChild(child)
		}
		fileCount += n
	}

	harvested := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := filepath.Join(path, entry.Name())
		if !b.eligible.Contains(filePath) {
			continue
		}

		leaf, err := b.files.HarvestFile(filePath)
		if err != nil {
			var fileErr *FileHarvestError
			if errors.As(err, &fileErr) {
				return 0, err
			}
			return 0, &FileHarvestError{Path: filePath, Err: err}
		}

		source := relative + entry.Name()
		if dir == nil {
			parent.AddChild(&models.Payload{
				SourceFile: source,
				Name:       entry.Name(),
				AbsPath:    filePath,
				Size:       leaf.Size,
			})
		} else {
			dir.AddChild(b.fileComponent(dir, leaf, entry.Name(), filePath, source))
		}
		harvested++
	}

	total := fileCount + harvested

	if dir != nil {
		dir.FileCount = total
		if total == 0 && b.cfg.KeepEmptyDirectories {
			dir.AddChild(b.placeholderComponent(dir, relative))
		}
	}

	return total, nil
}

// fileComponent wraps a harvested file in its component.
func (b *treeBuilder) fileComponent(dir *models.Directory, leaf *models.File, name, path, source string) *models.Component {
	leaf.Source = source
	leaf.Name = name
	leaf.AbsPath = path

	component := &models.Component{}
	if b.cfg.SetUniqueIdentifiers {
		leaf.ID = ident.Generate(ident.FilePrefix, dir.ID, name)
		component.ID = ident.Generate(ident.ComponentPrefix, dir.ID, leaf.ID)
	}
	component.GUID = b.componentGUID(source)
	component.AddChild(leaf)
	return component
}

// placeholderComponent keeps an empty directory alive with a create-folder marker.
func (b *treeBuilder) placeholderComponent(dir *models.Directory, relative string) *models.Component {
	component := &models.Component{KeyPath: true}
	if b.cfg.SetUniqueIdentifiers {
		component.ID = ident.Generate(ident.ComponentPrefix, dir.ID)
	}
	component.GUID = b.componentGUID(relative)
	component.AddChild(&models.CreateFolder{})
	return component
}

func (b *treeBuilder) componentGUID(source string) string {
	switch b.cfg.ComponentGUIDs {
	case GUIDAuto:
		return ident.AutoGUID
	case GUIDNow:
		return ident.ComponentGUID(source)
	default:
		return ""
	}
}
