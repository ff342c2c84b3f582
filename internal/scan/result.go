package scan

// Occurrence is a single detected reference. Line is 1-based; 0 marks
// records that are not line-specific (import matches) and is omitted
// from JSON.
type Occurrence struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Content string `json:"content"`
}

// ScanResult groups occurrences by detection category. The category set is
// fixed; consumers rely on every field being non-nil so JSON renders arrays.
type ScanResult struct {
	DirectImports               []Occurrence `json:"direct_imports"`
	SerializerClassDeclarations []Occurrence `json:"serializer_class_declarations"`
	FieldUsages                 []Occurrence `json:"field_usages"`
	SerializerInheritance       []Occurrence `json:"serializer_inheritance"`
	DirectInstantiations        []Occurrence `json:"direct_instantiations"`
	ManyTrueUsages              []Occurrence `json:"many_true_usages"`
	InnerClassUsages            []Occurrence `json:"inner_class_usages"`
	MetaClassReferences         []Occurrence `json:"meta_class_references"`

	// DefinitionLocated reports whether the locator found the target's own
	// definition. Advisory only; the detection passes run either way.
	DefinitionLocated bool `json:"-"`
}

// NewScanResult returns a result with every category initialized empty
func NewScanResult() *ScanResult {
	return &ScanResult{
		DirectImports:               []Occurrence{},
		SerializerClassDeclarations: []Occurrence{},
		FieldUsages:                 []Occurrence{},
		SerializerInheritance:       []Occurrence{},
		DirectInstantiations:        []Occurrence{},
		ManyTrueUsages:              []Occurrence{},
		InnerClassUsages:            []Occurrence{},
		MetaClassReferences:         []Occurrence{},
	}
}

// Category pairs a detection category key with its occurrences
type Category struct {
	Key         string
	Occurrences []Occurrence
}

// Categories returns the categories in fixed presentation order
func (r *ScanResult) Categories() []Category {
	return []Category{
		{"direct_imports", r.DirectImports},
		{"serializer_class_declarations", r.SerializerClassDeclarations},
		{"field_usages", r.FieldUsages},
		{"serializer_inheritance", r.SerializerInheritance},
		{"direct_instantiations", r.DirectInstantiations},
		{"many_true_usages", r.ManyTrueUsages},
		{"inner_class_usages", r.InnerClassUsages},
		{"meta_class_references", r.MetaClassReferences},
	}
}

// Total sums occurrences across all categories
func (r *ScanResult) Total() int {
	total := 0
	for _, c := range r.Categories() {
		total += len(c.Occurrences)
	}
	return total
}

type occurrenceKey struct {
	file string
	line int
}

// Dedupe keeps the first occurrence per (file, line) within each category
// and drops the rest regardless of content. Import records all carry line 0,
// so at most one import survives per file. Running Dedupe twice is a no-op.
func (r *ScanResult) Dedupe() {
	r.DirectImports = dedupeOccurrences(r.DirectImports)
	r.SerializerClassDeclarations = dedupeOccurrences(r.SerializerClassDeclarations)
	r.FieldUsages = dedupeOccurrences(r.FieldUsages)
	r.SerializerInheritance = dedupeOccurrences(r.SerializerInheritance)
	r.DirectInstantiations = dedupeOccurrences(r.DirectInstantiations)
	r.ManyTrueUsages = dedupeOccurrences(r.ManyTrueUsages)
	r.InnerClassUsages = dedupeOccurrences(r.InnerClassUsages)
	r.MetaClassReferences = dedupeOccurrences(r.MetaClassReferences)
}

func dedupeOccurrences(occs []Occurrence) []Occurrence {
	seen := make(map[occurrenceKey]bool, len(occs))
	out := make([]Occurrence, 0, len(occs))
	for _, o := range occs {
		key := occurrenceKey{o.File, o.Line}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}
