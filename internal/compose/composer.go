// Package compose combines a list of positive and negative glob patterns
// against a list of candidate paths into a single matched/not-matched
// decision, independent of the order the patterns were supplied in.
package compose

import (
	"strings"

	"github.com/arcflow-dev/pathfilter/internal/glob"
)

// Pattern is one glob pattern from the CLI's -p/--pattern flags or an
// optional rules file, annotated with whether it is an exclusion
// (negative) pattern.
type Pattern struct {
	Raw      string
	Negative bool
	body     string
}

// ParsePatterns classifies each raw pattern string: one leading '!' marks
// it negative and is stripped to get the pattern body actually matched
// against paths.
func ParsePatterns(raw []string) []Pattern {
	patterns := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		p := Pattern{Raw: r}
		if strings.HasPrefix(r, "!") {
			p.Negative = true
			p.body = r[1:]
		} else {
			p.body = r
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// Evaluate reports whether paths contains at least one path matched by a
// positive pattern that is not also matched by a negative one.
//
// Pos is the set of paths matched by any positive pattern; Neg is the set
// of paths matched by any negative pattern. The result is
// len(Pos) > 0 && Pos is not a subset of Neg. Because both sets are built
// independently of pattern order, and union/membership are idempotent,
// Evaluate is order-independent and stable under duplicate patterns.
//
// Each pattern is matched against the whole paths slice in one
// glob.MatchBatch call rather than once per path, so each pattern is walked
// once with all paths advancing together, instead of being re-walked for
// every path.
func Evaluate(patterns []Pattern, paths []string) (bool, error) {
	pos := make(map[string]struct{})
	neg := make(map[string]struct{})

	for _, p := range patterns {
		dst := pos
		if p.Negative {
			dst = neg
		}
		matches, err := glob.MatchBatch(p.body, paths)
		if err != nil {
			return false, err
		}
		for i, matched := range matches {
			if matched {
				dst[paths[i]] = struct{}{}
			}
		}
	}

	if len(pos) == 0 {
		return false, nil
	}
	for path := range pos {
		if _, excluded := neg[path]; !excluded {
			return true, nil
		}
	}
	return false, nil
}
