package mdark

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdark/internal/fileutil"
)

// ArtifactName is the fixed filename of every export.
const ArtifactName = "markdown-document.pdf"

// Saver hands a finished document to the user.
type Saver interface {
	// Save stores data and returns where it went.
	Save(data []byte) (string, error)
}

// DirSaver writes ArtifactName into Dir, replacing any previous export.
// The write is atomic: a failed save never leaves a partial file behind.
type DirSaver struct {
	Dir string // Empty means the current directory
}

// Save writes data to Dir/ArtifactName.
func (s DirSaver) Save(data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrSave, dir, err)
	}

	path := filepath.Join(dir, ArtifactName)
	// #nosec G306 -- exported documents are meant to be readable
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	return path, nil
}
