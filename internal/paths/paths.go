package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// RelativeTo converts an absolute path to a project-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to the project root
// - Converts backslashes to forward slashes
// - Returns project-relative path with forward slashes
func RelativeTo(absolutePath string, projectRoot string) (string, error) {
	// Resolve symlinks
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(projectRoot)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = projectRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	// Convert to forward slashes (platform independent)
	return filepath.ToSlash(relativePath), nil
}

// IsWithin checks if a path is inside the project root
func IsWithin(path string, projectRoot string) bool {
	relative, err := RelativeTo(path, projectRoot)
	if err != nil {
		return false
	}

	// Path is outside the root if it starts with ..
	return relative != ".." && !strings.HasPrefix(relative, "../")
}

// NormalizePath normalizes a path by converting backslashes to forward slashes
// This is useful for paths that are already relative but need normalization
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// JoinRoot joins a project root with a slash-form relative path
func JoinRoot(projectRoot string, relativePath string) string {
	normalized := strings.ReplaceAll(relativePath, "\\", "/")
	// Convert to OS-specific path separator for joining
	parts := strings.Split(normalized, "/")
	return filepath.Join(append([]string{projectRoot}, parts...)...)
}

// Stem returns the final path element without its extension,
// e.g. Stem("billing/serializers/invoices.py") == "invoices"
func Stem(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
