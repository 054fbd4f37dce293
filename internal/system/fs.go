package system

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/textedit"
)

// FS is the file access provisioning needs.
type FS interface {
	// EditFile runs editor over path and reports whether the content changed.
	EditFile(path string, editor textedit.Editor) (bool, error)
	// WriteFile replaces path with data and sets its permissions to perm.
	WriteFile(path string, data []byte, perm os.FileMode) error
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm os.FileMode) error
	// Chmod sets the permissions of path.
	Chmod(path string, perm os.FileMode) error
}

// OSFS performs the operations on the real filesystem.
type OSFS struct{}

func (OSFS) EditFile(path string, editor textedit.Editor) (bool, error) {
	changed, err := textedit.EditFile(path, editor)
	if err != nil {
		return false, fmt.Errorf("failed to edit %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Edited %s (changed=%t)\n", path, changed)
	return changed, nil
}

func (OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile leaves the mode of an existing file alone
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}

func (OSFS) MkdirAll(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

func (OSFS) Chmod(path string, perm os.FileMode) error {
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}

// DryRunFS reads real files to work out what would change and prints the
// planned mutations, but never writes.
type DryRunFS struct {
	Out io.Writer
}

// NewDryRunFS returns a DryRunFS printing to out.
func NewDryRunFS(out io.Writer) *DryRunFS {
	return &DryRunFS{Out: out}
}

func (d *DryRunFS) EditFile(path string, editor textedit.Editor) (bool, error) {
	changed, err := textedit.Preview(path, editor)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			// unprivileged dry runs can't always read system files
			_, err = fmt.Fprintf(d.Out, "[DRY] edit %s (unreadable, assuming change)\n", path)
			return true, err
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if changed {
		_, err = fmt.Fprintf(d.Out, "[DRY] edit %s\n", path)
	} else {
		_, err = fmt.Fprintf(d.Out, "[DRY] %s already up to date\n", path)
	}
	return changed, err
}

func (d *DryRunFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	_, err := fmt.Fprintf(d.Out, "[DRY] write %s (%d bytes, mode %04o)\n", path, len(data), perm.Perm())
	return err
}

func (d *DryRunFS) MkdirAll(path string, perm os.FileMode) error {
	_, err := fmt.Fprintf(d.Out, "[DRY] mkdir -p %s (mode %04o)\n", path, perm.Perm())
	return err
}

func (d *DryRunFS) Chmod(path string, perm os.FileMode) error {
	_, err := fmt.Fprintf(d.Out, "[DRY] chmod %04o %s\n", perm.Perm(), path)
	return err
}
