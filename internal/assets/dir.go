package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirLoader reads assets from {root}/styles and {root}/templates.
type DirLoader struct {
	root string // absolute, symlinks resolved
}

// NewDirLoader checks that root is a readable directory.
func NewDirLoader(root string) (*DirLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	if _, err := os.ReadDir(abs); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		case isNotDir(abs):
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &DirLoader{root: abs}, nil
}

func isNotDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func (d *DirLoader) LoadStyle(name string) (string, error) {
	return d.read(styleKind, name)
}

func (d *DirLoader) LoadTemplate(name string) (string, error) {
	return d.read(templateKind, name)
}

func (d *DirLoader) read(k kind, name string) (string, error) {
	file, err := k.file(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(d.root, filepath.FromSlash(file))
	if err := d.contain(full); err != nil {
		return "", err
	}

	data, err := os.ReadFile(full) // #nosec G304 -- contained in root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", k.notFound(name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contain fails when p, after following symlinks, leaves the root.
// A file that does not exist yet is checked as written.
func (d *DirLoader) contain(p string) error {
	if real, err := filepath.EvalSymlinks(p); err == nil {
		p = real
	}
	if !strings.HasPrefix(p, d.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s leaves %s", ErrPathTraversal, p, d.root)
	}
	return nil
}

var _ AssetLoader = (*DirLoader)(nil)
