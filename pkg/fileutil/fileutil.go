package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileExists reports whether a regular file exists at path.
func FileExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if file exists: %w", err)
	}
	return !info.IsDir(), nil
}

// EnsureDirExists creates path and its parents when they are missing.
func EnsureDirExists(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(path, ReadWriteExecuteUserReadExecuteOthers); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// WritePrivateFile writes data to path readable only by the owner, creating
// the parent directory if needed.
func WritePrivateFile(fs afero.Fs, path string, data []byte) error {
	if err := EnsureDirExists(fs, filepath.Dir(path)); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, ReadWriteUserPermission); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
