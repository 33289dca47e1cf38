// Package atomicfile writes files so that readers observe either the old or
// the complete new content, never a partial write.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempSuffix is appended to the target path to form the staging file.
const TempSuffix = ".tmp"

// Writer performs atomic writes. The zero value uses the real filesystem.
type Writer struct {
	// Rename commits the staged file; nil means os.Rename.
	Rename func(oldpath, newpath string) error
}

// WriteFile atomically writes data to path using the default Writer.
func WriteFile(path string, data []byte) error {
	var w Writer
	return w.WriteFile(path, data)
}

// WriteFile ensures the parent directory exists, writes data to a sibling
// `<path>.tmp`, then renames it over path. The original file's permissions
// are preserved; new files default to 0644. On failure the staging file is
// removed and path is left untouched.
func (w *Writer) WriteFile(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpName := path + TempSuffix
	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	// Clean up temp file on any error.
	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	// OpenFile's perm is masked by umask and ignored for existing files.
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	rename := w.Rename
	if rename == nil {
		rename = os.Rename
	}
	if err := rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
