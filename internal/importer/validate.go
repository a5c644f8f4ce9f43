package importer

// CanSubmit is the single "ready to submit" signal for an import session.
//
// It returns true iff there is at least one parsed row, at least one row is
// selected, every required field has at least one header mapped to it, and a
// destination account has been chosen. It is a pure function of its inputs
// and is re-evaluated on every mapping or selection change.
func CanSubmit(mapping FieldMapping, rowCount, selectedCount int, accountID string) bool {
	if rowCount == 0 || selectedCount == 0 || accountID == "" {
		return false
	}
	for _, f := range Required() {
		if !mapping.covers(f) {
			return false
		}
	}
	return true
}

// MissingFields lists the required fields that no header is mapped to yet,
// in Required() order. Used by the UI to tell the user what remains.
func MissingFields(mapping FieldMapping) []Field {
	var missing []Field
	for _, f := range Required() {
		if !mapping.covers(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
