package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker lists note files under a root, pruning ignored folders before
// descending into them so ignored subtrees are never visited.
type Walker struct {
	ignoreDirs map[string]struct{}
	excludes   []string
	extension  string
}

// NewWalker creates a walker. ignoreDirs are exact directory names
// (case-sensitive); excludes are doublestar patterns matched against
// paths relative to the root.
func NewWalker(ignoreDirs, excludes []string, extension string) *Walker {
	ignore := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = struct{}{}
	}
	return &Walker{
		ignoreDirs: ignore,
		excludes:   excludes,
		extension:  extension,
	}
}

// Walk returns the absolute paths of all selected files under root.
// Entries that cannot be read are skipped, not fatal.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, ignored := w.ignoreDirs[d.Name()]; ignored {
				return filepath.SkipDir
			}
			if w.excluded(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.selected(d.Name()) || w.excluded(relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// selected reports whether a filename matches the note extension and is
// not hidden.
func (w *Walker) selected(name string) bool {
	return strings.HasSuffix(name, w.extension) && !strings.HasPrefix(name, ".")
}

func (w *Walker) excluded(relPath string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// ReadFile reads a file as text, dropping any invalid UTF-8 sequences
// instead of failing on them.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
