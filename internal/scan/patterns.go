package scan

import (
	"regexp"
)

// getSerializerRE finds get_serializer / get_serializer_class method bodies
// whose return or yield statement lands within 20 lines of the signature.
// The captured group is the returned expression.
var getSerializerRE = regexp.MustCompile(
	`def\s+get_serializer(?:_class)?\s*\([^)]*\):\s*(?:\n[^\n]*){0,20}?\n[ \t]+(?:return|yield)\s+([^()\n]*)`)

// patternSet holds every compiled detection pattern for one target class.
// Content-level patterns (imports, parentDef, the locator definitions) run
// against whole files; the rest run line by line.
type patternSet struct {
	className string

	imports        []*regexp.Regexp
	declarations   []*regexp.Regexp
	fields         []*regexp.Regexp
	inheritance    *regexp.Regexp
	instantiations []*regexp.Regexp
	manyTrue       []*regexp.Regexp
	innerClass     *regexp.Regexp
	metaClass      *regexp.Regexp

	// parentDef captures enclosing *Serializer classes that declare the
	// target as a nested class within a 20 line window
	parentDef *regexp.Regexp

	// definition confirmation, in locator probe order
	classDef    *regexp.Regexp
	innerDef    *regexp.Regexp
	anyInnerDef *regexp.Regexp
}

func newPatternSet(ref TargetReference) *patternSet {
	group := regexp.QuoteMeta(ref.Group)
	module := regexp.QuoteMeta(ref.Module)
	name := regexp.QuoteMeta(ref.Class)

	return &patternSet{
		className: ref.Class,

		imports: []*regexp.Regexp{
			// from app.module import Name
			regexp.MustCompile(`from\s+` + group + `\.` + module + `\s+import\s+.*` + name),
			// from app.module import (Name, ...)
			regexp.MustCompile(`from\s+` + group + `\.` + module + `\s+import\s+\(.*` + name + `.*\)`),
			// from app.serializers import Name
			regexp.MustCompile(`from\s+` + group + `\.serializers\s+import\s+.*` + name),
			// from app.serializers import (Name, ...)
			regexp.MustCompile(`from\s+` + group + `\.serializers\s+import\s+\(.*` + name + `.*\)`),
			// from app.rest.serializers.module import Name
			regexp.MustCompile(`from\s+` + group + `\.rest\.serializers\.` + module + `\s+import\s+.*` + name),
			// from app.rest.serializers import Name
			regexp.MustCompile(`from\s+` + group + `\.rest\.serializers\s+import\s+.*` + name),
		},

		declarations: []*regexp.Regexp{
			regexp.MustCompile(`serializer_class\s*=\s*` + name),
			regexp.MustCompile(`serializer_class\s*=\s*` + name + `\.[A-Za-z]+`),
			regexp.MustCompile(`(?:return|yield)\s+` + name),
			regexp.MustCompile(`serializer\s*=\s*` + name),
			// name appearing quoted, e.g. in a registry dict
			regexp.MustCompile(`['"]` + name + `['"]`),
			regexp.MustCompile(`:\s*` + name),
		},

		fields: []*regexp.Regexp{
			regexp.MustCompile(`\w+\s*=\s*` + name + `\(`),
			regexp.MustCompile(`\w+\s*=\s*` + name + `\.\w+\(`),
		},

		inheritance: regexp.MustCompile(`class\s+\w+\(` + name + `.*\):`),

		instantiations: []*regexp.Regexp{
			regexp.MustCompile(name + `\(`),
			regexp.MustCompile(name + `\.\w+\(`),
		},

		manyTrue: []*regexp.Regexp{
			regexp.MustCompile(name + `\(.*many=True`),
			regexp.MustCompile(name + `\.\w+\(.*many=True`),
		},

		innerClass: regexp.MustCompile(name + `\.[A-Za-z]+`),
		metaClass:  regexp.MustCompile(name + `\.Meta`),

		parentDef: regexp.MustCompile(`class\s+(\w+Serializer)(?:[^\n]*\n){0,20}?[^\n]*class\s+` + name),

		classDef:    regexp.MustCompile(`class\s+` + name + `\(`),
		innerDef:    regexp.MustCompile(`class\s+\w+Serializer(?:[^\n]*\n){0,20}?[^\n]*class\s+` + name + `\(`),
		anyInnerDef: regexp.MustCompile(`class\s+\w+(?:[^\n]*\n){0,20}?[^\n]*class\s+` + name + `\(`),
	}
}

// parentUsagePattern matches the target accessed through a parent class,
// e.g. InvoiceSerializer.LineSerializer
func parentUsagePattern(parent string, className string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(parent) + `\.` + regexp.QuoteMeta(className))
}
