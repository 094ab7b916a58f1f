package publish

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is one object to upload.
type File struct {
	Path        string // Absolute or root-joined local path
	Key         string // Storage key, always forward-slash separated
	ContentType string // Empty means no override
	Size        int64
}

// Key converts a path below root into a storage key.
func Key(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", path, err)
	}
	if rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", fmt.Errorf("%s is not below %s", path, root)
	}
	return NormalizeKey(rel), nil
}

// NormalizeKey rewrites any path separator convention to forward slashes.
func NormalizeKey(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), `\`, "/")
}

// Walk lists every regular file below root in lexical order. Symbolic links
// that resolve to regular files are included; directories are descended into.
// A symlinked root is resolved first, but returned paths stay under root.
func Walk(root string) ([]File, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	var files []File
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		key, err := Key(resolved, path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		files = append(files, File{
			Path:        filepath.Join(root, rel),
			Key:         key,
			ContentType: ContentType(d.Name()),
			Size:        info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}
