package scan

import (
	"context"
	"strings"

	"sua/internal/logging"
)

// Scanner runs the detection passes for a target class over a file tree.
// Each file is read once and every line-level pass applied to it before
// moving on; detection is purely textual.
type Scanner struct {
	tree   *FileTree
	logger *logging.Logger
}

// NewScanner creates a scanner over the given tree
func NewScanner(tree *FileTree, logger *logging.Logger) *Scanner {
	return &Scanner{tree: tree, logger: logger}
}

type instantiationKey struct {
	file    string
	line    int
	content string
}

// Analyze runs every detection pass for the referenced class and returns
// the deduplicated result. A missing class definition downgrades to a
// warning; the passes run regardless.
func (s *Scanner) Analyze(ctx context.Context, ref TargetReference) (*ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pats := newPatternSet(ref)

	s.logger.Info("Analyzing serializer usage", map[string]interface{}{
		"target": ref.String(),
		"files":  s.tree.Len(),
	})

	result := NewScanResult()

	locator := NewLocator(s.tree, s.logger)
	result.DefinitionLocated = locator.locate(ref, pats)
	if !result.DefinitionLocated {
		s.logger.Warn("Could not find class definition, results may be inaccurate", map[string]interface{}{
			"class": ref.Class,
		})
	}

	seen := make(map[instantiationKey]bool)

	s.tree.Walk(func(f SourceFile) {
		s.scanFile(f, pats, result, seen)
	})

	s.scanParentUsages(pats, result)

	result.Dedupe()
	return result, nil
}

func (s *Scanner) scanFile(f SourceFile, pats *patternSet, result *ScanResult, seen map[instantiationKey]bool) {
	// whole-content import probes: first match per pattern, no line number
	for _, p := range pats.imports {
		if m := p.FindString(f.Content); m != "" {
			result.DirectImports = append(result.DirectImports,
				Occurrence{File: f.Path, Content: m})
		}
	}

	lines := strings.Split(f.Content, "\n")
	for i, line := range lines {
		num := i + 1
		trimmed := strings.TrimSpace(line)

		for _, p := range pats.declarations {
			if p.MatchString(line) {
				result.SerializerClassDeclarations = append(result.SerializerClassDeclarations,
					Occurrence{File: f.Path, Line: num, Content: trimmed})
			}
		}

		for _, p := range pats.fields {
			if p.MatchString(line) {
				result.FieldUsages = append(result.FieldUsages,
					Occurrence{File: f.Path, Line: num, Content: trimmed})
			}
		}

		if pats.inheritance.MatchString(line) {
			result.SerializerInheritance = append(result.SerializerInheritance,
				Occurrence{File: f.Path, Line: num, Content: trimmed})
		}

		// bare calls only: lines carrying a class keyword or an assignment
		// belong to the declaration and field categories
		if !strings.Contains(line, "class") && !strings.Contains(line, "=") {
			for _, p := range pats.instantiations {
				if p.MatchString(line) {
					key := instantiationKey{f.Path, num, trimmed}
					if !seen[key] {
						seen[key] = true
						result.DirectInstantiations = append(result.DirectInstantiations,
							Occurrence{File: f.Path, Line: num, Content: trimmed})
					}
				}
			}
		}

		for _, p := range pats.manyTrue {
			if p.MatchString(line) {
				result.ManyTrueUsages = append(result.ManyTrueUsages,
					Occurrence{File: f.Path, Line: num, Content: trimmed})
			}
		}

		if !strings.Contains(line, "serializer_class") && pats.innerClass.MatchString(line) {
			result.InnerClassUsages = append(result.InnerClassUsages,
				Occurrence{File: f.Path, Line: num, Content: trimmed})
		}

		if pats.metaClass.MatchString(line) {
			result.MetaClassReferences = append(result.MetaClassReferences,
				Occurrence{File: f.Path, Line: num, Content: trimmed})
		}
	}

	// dynamic selection inside get_serializer bodies that the line pass
	// cannot see; the recorded line is that of the return statement
	for _, m := range getSerializerRE.FindAllStringSubmatchIndex(f.Content, -1) {
		body := f.Content[m[2]:m[3]]
		if !strings.Contains(body, pats.className) {
			continue
		}
		num := strings.Count(f.Content[:m[2]], "\n") + 1
		result.SerializerClassDeclarations = append(result.SerializerClassDeclarations, Occurrence{
			File:    f.Path,
			Line:    num,
			Content: "Dynamic selection in get_serializer_class: " + strings.TrimSpace(body),
		})
	}
}

// scanParentUsages records usages reached through an enclosing parent class,
// e.g. InvoiceSerializer.LineSerializer where LineSerializer is the target.
// Parents are scanned one at a time, outermost loop per parent.
func (s *Scanner) scanParentUsages(pats *patternSet, result *ScanResult) {
	parents := findParentSerializers(s.tree, pats)
	if len(parents) == 0 {
		return
	}

	s.logger.Debug("Scanning usages through parent serializers", map[string]interface{}{
		"class":   pats.className,
		"parents": strings.Join(parents, ", "),
	})

	for _, parent := range parents {
		p := parentUsagePattern(parent, pats.className)
		s.tree.Walk(func(f SourceFile) {
			for i, line := range strings.Split(f.Content, "\n") {
				if p.MatchString(line) {
					result.SerializerClassDeclarations = append(result.SerializerClassDeclarations, Occurrence{
						File:    f.Path,
						Line:    i + 1,
						Content: "Used through parent: " + strings.TrimSpace(line),
					})
				}
			}
		})
	}
}
