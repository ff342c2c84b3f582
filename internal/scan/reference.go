package scan

import (
	"strings"

	"sua/internal/errors"
)

// TargetReference identifies a serializer class by its dotted path,
// e.g. billing.invoices.InvoiceSerializer.
type TargetReference struct {
	Group  string
	Module string
	Class  string
}

// ParseReference splits a dotted path into a TargetReference. Paths with more
// than three segments keep the first segment as the group and the last two as
// module and class, so billing.rest.serializers.invoices.InvoiceSerializer
// resolves to {billing, invoices, InvoiceSerializer}.
func ParseReference(path string) (TargetReference, error) {
	parts := strings.Split(path, ".")
	if len(parts) < 3 {
		return TargetReference{}, errors.NewAuditError(errors.InvalidReference,
			"reference must be in 'app.module.ClassName' or 'app.path.to.module.ClassName' form", nil).
			WithDetails(map[string]interface{}{"reference": path})
	}

	if len(parts) > 3 {
		return TargetReference{
			Group:  parts[0],
			Module: parts[len(parts)-2],
			Class:  parts[len(parts)-1],
		}, nil
	}

	return TargetReference{Group: parts[0], Module: parts[1], Class: parts[2]}, nil
}

// String returns the short dotted form of the reference
func (r TargetReference) String() string {
	return r.Group + "." + r.Module + "." + r.Class
}
