package table

import "strings"

// truthyTokens are the substrings that mark a flag cell as set. The
// sheet is hand-edited, so circles and Japanese affirmatives count.
var truthyTokens = []string{"true", "1", "on", "yes", "y", "ok", "有", "あり", "実施", "○", "◯"}

// CellAt returns the cell at idx, or "" when the row is too short or
// the index is unbound (-1).
func CellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Truthy reports whether a flag cell should be read as true.
func Truthy(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return false
	}
	for _, tok := range truthyTokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// FormatBool renders a flag for writing back to a cell.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// nameSeparators splits a serialized name-set cell: comma, ideographic
// comma, quotes, and any whitespace all separate names.
func nameSeparator(r rune) bool {
	switch r {
	case ',', '、', '"', ' ', '\t', '\n', '\r', '　':
		return true
	}
	return false
}

// SplitNames parses a name-set cell into its member names.
func SplitNames(s string) []string {
	fields := strings.FieldsFunc(s, nameSeparator)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			names = append(names, f)
		}
	}
	return names
}

// Uniq removes duplicates while keeping first-seen order.
func Uniq(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// JoinNames serializes a name-set for one cell, deduplicated and
// comma-joined.
func JoinNames(names []string) string {
	return strings.Join(Uniq(names), ",")
}
