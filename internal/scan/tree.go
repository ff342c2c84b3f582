package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"

	"sua/internal/logging"
	"sua/internal/paths"
)

// SourceFile is one scannable file: project-relative slash path plus its
// full content. Contents are read during Walk and not retained.
type SourceFile struct {
	Path    string
	Content string
}

// TreeOptions controls which files a FileTree collects
type TreeOptions struct {
	// Extension selects files, e.g. ".py"
	Extension string
	// Ignore holds glob patterns matched against both an entry's base name
	// and its project-relative path
	Ignore []string
}

// FileTree is the set of scannable files under the registered roots.
// Paths are collected once at construction in root order, each root walked
// lexically, so every pass over the tree sees the same files in the same
// order.
type FileTree struct {
	projectRoot string
	roots       []string
	files       []string
	ext         string
	logger      *logging.Logger
}

type compiledIgnore struct {
	pattern string
	matcher glob.Glob
}

// NewFileTree walks the given project-relative roots and collects matching
// files. Roots that do not exist are warned about and skipped.
func NewFileTree(projectRoot string, roots []string, opts TreeOptions, logger *logging.Logger) (*FileTree, error) {
	ignores := make([]compiledIgnore, 0, len(opts.Ignore))
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", pattern, err)
		}
		ignores = append(ignores, compiledIgnore{pattern: pattern, matcher: g})
	}

	tree := &FileTree{
		projectRoot: projectRoot,
		roots:       make([]string, 0, len(roots)),
		ext:         opts.Extension,
		logger:      logger,
	}

	seen := make(map[string]bool)
	for _, root := range roots {
		normalized := paths.NormalizePath(root)
		absRoot := paths.JoinRoot(projectRoot, normalized)

		if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
			logger.Warn("Root does not exist, skipping", map[string]interface{}{
				"root": normalized,
			})
			continue
		}
		tree.roots = append(tree.roots, normalized)

		err := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}

			rel, relErr := filepath.Rel(projectRoot, p)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if p != absRoot && matchesIgnore(ignores, d.Name(), rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if filepath.Ext(d.Name()) != opts.Extension {
				return nil
			}
			if matchesIgnore(ignores, d.Name(), rel) {
				return nil
			}
			if !seen[rel] {
				seen[rel] = true
				tree.files = append(tree.files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("Collected file tree", map[string]interface{}{
		"roots": len(tree.roots),
		"files": len(tree.files),
	})

	return tree, nil
}

func matchesIgnore(ignores []compiledIgnore, name string, rel string) bool {
	for _, ig := range ignores {
		if ig.matcher.Match(name) || ig.matcher.Match(rel) {
			return true
		}
	}
	return false
}

// Files returns the collected project-relative paths
func (t *FileTree) Files() []string {
	return t.files
}

// Len returns the number of collected files
func (t *FileTree) Len() int {
	return len(t.files)
}

// Read loads a project-relative file. The second return is false when the
// file is unreadable or not valid UTF-8; such files are skipped by every
// pass rather than failing the scan.
func (t *FileTree) Read(rel string) (string, bool) {
	data, err := os.ReadFile(paths.JoinRoot(t.projectRoot, rel))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// Walk reads every collected file in order and hands it to fn. Files that
// fail to read or decode are logged at debug level and skipped.
func (t *FileTree) Walk(fn func(f SourceFile)) {
	for _, rel := range t.files {
		content, ok := t.Read(rel)
		if !ok {
			t.logger.Debug("Skipping unreadable file", map[string]interface{}{
				"file": rel,
			})
			continue
		}
		fn(SourceFile{Path: rel, Content: content})
	}
}

// filesUnderGroup returns the collected files inside the root whose base
// name matches the group, e.g. group "billing" selects root "src/billing".
func (t *FileTree) filesUnderGroup(group string) []string {
	for _, root := range t.roots {
		if path.Base(root) != group {
			continue
		}
		prefix := root + "/"
		var out []string
		for _, f := range t.files {
			if strings.HasPrefix(f, prefix) {
				out = append(out, f)
			}
		}
		return out
	}
	return nil
}
