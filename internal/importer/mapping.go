package importer

import "fmt"

// Field is a semantic transaction field a CSV column can be mapped to.
// The set is closed; the web layer renders exactly these options and the
// validator checks required coverage against Required(). Growing this set
// means revisiting both.
type Field string

const (
	FieldSkip        Field = "skip"
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// Fields returns the full mapping vocabulary in display order.
func Fields() []Field {
	return []Field{FieldSkip, FieldDate, FieldAmount, FieldDescription, FieldCategory}
}

// Required returns the fields that must each have at least one header mapped
// before an import can be submitted.
func Required() []Field {
	return []Field{FieldDate, FieldAmount, FieldDescription}
}

// ValidField reports whether s names a known field.
func ValidField(s string) bool {
	switch Field(s) {
	case FieldSkip, FieldDate, FieldAmount, FieldDescription, FieldCategory:
		return true
	}
	return false
}

// FieldMapping associates CSV headers with semantic fields. Headers without
// an entry are treated as skipped.
type FieldMapping map[string]Field

// Set maps header to field, overwriting any previous mapping for that header
// only. The header must be one of headers; the field must be in the closed
// vocabulary.
func (m FieldMapping) Set(header string, field Field, headers []string) error {
	if !ValidField(string(field)) {
		return fmt.Errorf("unknown field %q", field)
	}
	found := false
	for _, h := range headers {
		if h == header {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown header %q", header)
	}
	m[header] = field
	return nil
}

// FieldFor returns the mapped field for header, or FieldSkip if unmapped.
func (m FieldMapping) FieldFor(header string) Field {
	if f, ok := m[header]; ok {
		return f
	}
	return FieldSkip
}

// headerFor resolves the header currently feeding a semantic field.
// When several headers map to the same field, the last one in CSV header
// order wins; this keeps extraction deterministic regardless of the order
// mappings were applied in.
func (m FieldMapping) headerFor(field Field, headers []string) (string, bool) {
	winner := ""
	found := false
	for _, h := range headers {
		if m.FieldFor(h) == field {
			winner = h
			found = true
		}
	}
	return winner, found
}

// covers reports whether at least one header is mapped to field.
func (m FieldMapping) covers(field Field) bool {
	for _, f := range m {
		if f == field {
			return true
		}
	}
	return false
}
