package watch

import (
	"path/filepath"
	"strings"
)

// Namespace derives the generation namespace for a settings file: the
// file's directory relative to root, one dot-joined segment per directory,
// appended to base. A file directly under root (or outside it) gets base.
//
//	Namespace("/cfg", "App", "/cfg/sub/appsettings.json") == "App.sub"
func Namespace(root, base, path string) string {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Dir(filepath.Clean(path)))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return base
	}
	segs := strings.Split(filepath.ToSlash(rel), "/")
	if base == "" {
		return strings.Join(segs, ".")
	}
	return base + "." + strings.Join(segs, ".")
}
