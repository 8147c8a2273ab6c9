package harvest

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/harrison/harvest/internal/models"
)

// FileHarvester produces the leaf descriptor of one eligible file.
type FileHarvester interface {
	// HarvestFile inspects the file at the absolute path. The returned
	// File's Source is the absolute path; the tree builder rewrites it.
	HarvestFile(path string) (*models.File, error)
}

// StatFileHarvester implements FileHarvester using file metadata only.
type StatFileHarvester struct{}

// NewStatFileHarvester creates a new StatFileHarvester.
func NewStatFileHarvester() *StatFileHarvester {
	return &StatFileHarvester{}
}

// HarvestFile stats the file and checks that it can be opened for reading.
func (h *StatFileHarvester) HarvestFile(path string) (*models.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileHarvestError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &FileHarvestError{Path: path, Err: errors.New("is a directory")}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileHarvestError{Path: path, Err: err}
	}
	_ = f.Close()

	return &models.File{
		KeyPath: true,
		Source:  path,
		Name:    filepath.Base(path),
		AbsPath: path,
		Size:    info.Size(),
	}, nil
}
