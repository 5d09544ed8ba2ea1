package sanitizer

// NormalizeSlice applies fn to every value and drops empties and
// duplicates, preserving first-seen order. Used for car feature lists.
func NormalizeSlice(values []string, fn func(string) string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := fn(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
