// Package enumerate discovers serializer class definitions across a file
// tree and derives the dotted reference path each one is analyzed under.
package enumerate

import (
	"regexp"
	"strings"

	"sua/internal/logging"
	"sua/internal/paths"
	"sua/internal/scan"
)

// Serializer is one discovered class definition.
type Serializer struct {
	Name string `json:"name"`
	Path string `json:"path"`
	File string `json:"file"`
}

var classDefPatterns = []*regexp.Regexp{
	// standard definition with a parent list
	regexp.MustCompile(`class\s+(\w+Serializer)\s*\(`),
	// bare definition without one
	regexp.MustCompile(`class\s+(\w+Serializer)\s*:`),
}

// FindAll scans every file in the tree for classes named *Serializer and
// returns one record per distinct class name. When the same name is defined
// in several places the first definition in tree order wins.
func FindAll(tree *scan.FileTree, logger *logging.Logger) []Serializer {
	logger.Info("Scanning for serializer definitions", map[string]interface{}{
		"files": tree.Len(),
	})

	var serializers []Serializer
	seen := make(map[string]bool)

	tree.Walk(func(f scan.SourceFile) {
		for _, p := range classDefPatterns {
			for _, m := range p.FindAllStringSubmatch(f.Content, -1) {
				name := m[1]
				if seen[name] {
					continue
				}
				seen[name] = true
				serializers = append(serializers, Serializer{
					Name: name,
					Path: referencePath(f.Path, name),
					File: f.Path,
				})
			}
		}
	})

	logger.Info("Serializer scan complete", map[string]interface{}{
		"found": len(serializers),
	})
	return serializers
}

// referencePath derives the dotted reference for a class found in the given
// project-relative file, mirroring how the conventional layouts import it.
func referencePath(rel string, name string) string {
	group := strings.Split(rel, "/")[0]
	stem := paths.Stem(rel)

	switch {
	case strings.Contains(rel, "rest/serializers"):
		return group + ".rest.serializers." + stem + "." + name
	case strings.Contains(rel, "serializers"):
		return group + ".serializers." + stem + "." + name
	default:
		return group + "." + stem + "." + name
	}
}
