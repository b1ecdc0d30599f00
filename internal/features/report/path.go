package report

import "strings"

// lookupPath resolves a dot-path against a nested row. The second return is
// false when any segment is absent or a non-map value is traversed, so
// formatting and predicates stay total over loosely shaped rows.
func lookupPath(row Row, path string) (any, bool) {
	var cur any = row
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath writes a value into a nested row, creating intermediate maps for
// dotted keys so projected rows keep the stored shape.
func setPath(row Row, path string, value any) {
	parts := strings.Split(path, ".")
	cur := row
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
