package view

// visibilityCond translates a Visibility rule into a predicate conjunct.
// An anonymous caller (id 0) only sees published rows; the owner also sees
// their own unpublished ones. The rule is applied wherever video rows enter a
// view, base table and joins alike.
func visibilityCond(v Visibility, callerID uint) (string, []any, bool) {
	switch v {
	case VisibilityPublishedOrOwner:
		if callerID == 0 {
			return "is_published = ?", []any{true}, true
		}
		return "(is_published = ? OR owner_id = ?)", []any{true, callerID}, true
	default:
		return "", nil, false
	}
}

// sensitiveFields must never appear in any view output, no matter what a
// spec's projection says. Scrubbing is independent of per-view configuration.
var sensitiveFields = map[string]struct{}{
	"password":      {},
	"refresh_token": {},
}

// scrub removes sensitive fields from a row and every nested row.
func scrub(row Row) {
	for key, val := range row {
		if _, deny := sensitiveFields[key]; deny {
			delete(row, key)
			continue
		}
		switch nested := val.(type) {
		case Row:
			scrub(nested)
		case []Row:
			for _, r := range nested {
				scrub(r)
			}
		}
	}
}
