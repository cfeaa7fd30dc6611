package writeback

import (
	"fmt"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
)

const defaultPerm os.FileMode = 0o644

// WriteFile replaces name on fs with data. The write is atomic: content is
// written to a temp file in the same directory first, then renamed, so a
// reader never observes a half-written artifact.
func WriteFile(fs billy.Filesystem, name string, data []byte) error {
	dir := filepath.Dir(name)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := fs.TempFile(dir, ".settingsgen-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	// Keep the permissions of the file being replaced; temp files are 0600.
	if ch, ok := fs.(billy.Chmod); ok {
		perm := defaultPerm
		if info, err := fs.Stat(name); err == nil {
			perm = info.Mode().Perm()
		}
		_ = ch.Chmod(tmpName, perm) // best-effort permission sync
	}

	if err := fs.Rename(tmpName, name); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", name, err)
	}
	return nil
}
