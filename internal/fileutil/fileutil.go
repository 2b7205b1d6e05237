// Package fileutil holds the filesystem helpers shared by the exporter,
// the stage and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyExtension  = errors.New("extension cannot be empty")
	ErrUnsafeExtension = errors.New("extension contains path separator or null byte")
	ErrEmptyPath       = errors.New("path cannot be empty")
)

// ValidateExtension rejects extensions that would escape the temp pattern.
func ValidateExtension(ext string) error {
	switch {
	case ext == "":
		return ErrEmptyExtension
	case strings.ContainsAny(ext, "/\\\x00"):
		return ErrUnsafeExtension
	}
	return nil
}

// WriteTempFile stores content in a new mdark-*.ext file under the system
// temp dir. The caller owns the file and removes it with cleanup.
func WriteTempFile(content, ext string) (string, func(), error) {
	if err := ValidateExtension(ext); err != nil {
		return "", nil, err
	}
	f, err := os.CreateTemp("", "mdark-*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	if err := fill(f, []byte(content), false); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// WriteFileAtomic replaces path with data through a sibling temp file and a
// rename. Readers see either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	// After a successful rename there is nothing left to remove.
	defer func() { _ = os.Remove(tmp) }()

	if err := fill(f, data, true); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// fill writes data and closes f, flushing to disk first when durable is set.
func fill(f *os.File, data []byte, durable bool) error {
	_, err := f.Write(data)
	if err == nil && durable {
		if err = f.Sync(); err != nil {
			err = fmt.Errorf("syncing temp file: %w", err)
		}
	} else if err != nil {
		err = fmt.Errorf("writing temp file: %w", err)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing temp file: %w", cerr)
	}
	return err
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirWritable reports whether a file can be created inside dir.
func DirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".mdark-probe-*")
	if err != nil {
		return false
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	return true
}

// IsFilePath reports whether s holds a path separator, so "work" is a
// config name while "./work.yaml" and `C:\mdark\work.yaml` are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}
