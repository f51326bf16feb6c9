package glob

// MatchesAny reports whether path matches any one of patterns. It stops at
// the first match; a pattern parsing error aborts the whole check.
func MatchesAny(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		results, err := MatchBatch(pattern, []string{path})
		if err != nil {
			return false, err
		}
		if len(results) > 0 && results[0] {
			return true, nil
		}
	}
	return false, nil
}
