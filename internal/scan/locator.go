package scan

import (
	"strings"

	"sua/internal/logging"
)

// Locator confirms that a target class is actually defined somewhere in the
// project. Location is best effort: a miss downgrades to a warning and the
// scan proceeds, since the detection passes do not depend on the definition.
type Locator struct {
	tree   *FileTree
	logger *logging.Logger
}

// NewLocator creates a locator over the given tree
func NewLocator(tree *FileTree, logger *logging.Logger) *Locator {
	return &Locator{tree: tree, logger: logger}
}

// Locate reports whether the target's definition can be found. Probe order:
// the direct candidate modules, enclosing parent serializers anywhere in the
// tree, then every file under the group's root as a last resort.
func (l *Locator) Locate(ref TargetReference) bool {
	return l.locate(ref, newPatternSet(ref))
}

func (l *Locator) locate(ref TargetReference, pats *patternSet) bool {
	// Step 1: direct candidate modules
	for _, rel := range l.candidateModules(ref) {
		content, ok := l.tree.Read(rel)
		if !ok {
			continue
		}
		if pats.classDef.MatchString(content) {
			l.logger.Debug("Found class definition", map[string]interface{}{
				"class": ref.Class,
				"file":  rel,
			})
			return true
		}
		if pats.innerDef.MatchString(content) {
			l.logger.Debug("Found class as inner class", map[string]interface{}{
				"class": ref.Class,
				"file":  rel,
			})
			return true
		}
	}

	// Step 2: an enclosing parent serializer anywhere in the tree
	if parents := findParentSerializers(l.tree, pats); len(parents) > 0 {
		l.logger.Debug("Found potential parent serializers", map[string]interface{}{
			"class":   ref.Class,
			"parents": strings.Join(parents, ", "),
		})
		return true
	}

	// Step 3: every file under the group's root
	for _, rel := range l.tree.filesUnderGroup(ref.Group) {
		content, ok := l.tree.Read(rel)
		if !ok {
			continue
		}
		if pats.anyInnerDef.MatchString(content) {
			l.logger.Debug("Found class as inner class", map[string]interface{}{
				"class": ref.Class,
				"file":  rel,
			})
			return true
		}
	}

	return false
}

// candidateModules lists the conventional locations of the target's module,
// in probe order
func (l *Locator) candidateModules(ref TargetReference) []string {
	ext := l.tree.ext
	return []string{
		ref.Group + "/rest/serializers/" + ref.Module + ext,
		ref.Group + "/" + ref.Module + ext,
		ref.Group + "/serializers/" + ref.Module + ext,
		ref.Group + "/custom_serializer/" + ref.Module + ext,
	}
}

// findParentSerializers collects the names of *Serializer classes that
// declare the target as a nested class, in tree order without duplicates
func findParentSerializers(tree *FileTree, pats *patternSet) []string {
	var parents []string
	seen := make(map[string]bool)

	tree.Walk(func(f SourceFile) {
		for _, match := range pats.parentDef.FindAllStringSubmatch(f.Content, -1) {
			name := match[1]
			if !seen[name] {
				seen[name] = true
				parents = append(parents, name)
			}
		}
	})

	return parents
}
