package scan

import "testing"

func TestLocator_Locate_CandidateModules(t *testing.T) {
	definition := `class InvoiceSerializer(serializers.ModelSerializer):
    pass
`

	tests := []struct {
		name string
		path string
	}{
		{"rest serializers layout", "billing/rest/serializers/invoices.py"},
		{"module at group root", "billing/invoices.py"},
		{"serializers package", "billing/serializers/invoices.py"},
		{"custom serializer package", "billing/custom_serializer/invoices.py"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, map[string]string{tt.path: definition}, []string{"billing"})
			ref := TargetReference{Group: "billing", Module: "invoices", Class: "InvoiceSerializer"}
			if !NewLocator(tree, newTestLogger()).Locate(ref) {
				t.Errorf("Locate failed to find definition in %s", tt.path)
			}
		})
	}
}

func TestLocator_Locate_InnerClassInCandidate(t *testing.T) {
	files := map[string]string{
		"billing/invoices.py": `class WrapperSerializer(serializers.Serializer):
    class InvoiceSerializer(serializers.Serializer):
        pass
`,
	}
	tree := buildTree(t, files, []string{"billing"})
	ref := TargetReference{Group: "billing", Module: "invoices", Class: "InvoiceSerializer"}
	if !NewLocator(tree, newTestLogger()).Locate(ref) {
		t.Error("Locate failed to find inner class in candidate module")
	}
}

func TestLocator_Locate_ViaParentSerializer(t *testing.T) {
	// defined only as a nested class of another serializer, in a file no
	// candidate module path points at
	files := map[string]string{
		"billing/nested.py": `class OrderSerializer(serializers.ModelSerializer):
    class RefundSerializer(serializers.Serializer):
        pass
`,
	}
	tree := buildTree(t, files, []string{"billing"})
	ref := TargetReference{Group: "billing", Module: "refunds", Class: "RefundSerializer"}
	if !NewLocator(tree, newTestLogger()).Locate(ref) {
		t.Error("Locate failed to find class nested in a parent serializer")
	}
}

func TestLocator_Locate_GroupWideFallback(t *testing.T) {
	// the enclosing class is not named *Serializer, so only the group-wide
	// scan can find it
	files := map[string]string{
		"billing/handlers.py": `class InvoiceBundle:
    class PaymentSerializer(serializers.Serializer):
        pass
`,
	}
	tree := buildTree(t, files, []string{"billing"})
	ref := TargetReference{Group: "billing", Module: "payments", Class: "PaymentSerializer"}
	if !NewLocator(tree, newTestLogger()).Locate(ref) {
		t.Error("Locate failed to find class through the group-wide scan")
	}
}

func TestLocator_Locate_NotFound(t *testing.T) {
	files := map[string]string{
		"billing/views.py": `class InvoiceViewSet(ModelViewSet):
    pass
`,
	}
	tree := buildTree(t, files, []string{"billing"})
	ref := TargetReference{Group: "billing", Module: "invoices", Class: "InvoiceSerializer"}
	if NewLocator(tree, newTestLogger()).Locate(ref) {
		t.Error("Locate reported a definition that does not exist")
	}
}

func TestFindParentSerializers(t *testing.T) {
	files := map[string]string{
		"billing/a.py": `class OrderSerializer(serializers.Serializer):
    class LineItemSerializer(serializers.Serializer):
        pass
`,
		"billing/b.py": `class StatementSerializer(serializers.Serializer):
    class LineItemSerializer(serializers.Serializer):
        pass
`,
		"billing/c.py": `class OrderSerializer(serializers.Serializer):
    class LineItemSerializer(serializers.Serializer):
        pass
`,
	}
	tree := buildTree(t, files, []string{"billing"})
	ref := TargetReference{Group: "billing", Module: "items", Class: "LineItemSerializer"}
	pats := newPatternSet(ref)

	got := findParentSerializers(tree, pats)
	want := []string{"OrderSerializer", "StatementSerializer"}
	if len(got) != len(want) {
		t.Fatalf("findParentSerializers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parents[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
