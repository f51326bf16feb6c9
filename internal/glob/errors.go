// Package glob implements batch matching of changed-file paths against a
// single glob pattern, and the any-of-patterns convenience wrapper used by
// the composer.
package glob

import "errors"

// Sentinel errors returned by pattern parsing. Callers should use
// errors.Is to test for a specific failure; MatchBatch and MatchesAny wrap
// these with the offending pattern text via fmt.Errorf("%w: ...", ...).
var (
	ErrTrailingBackslash = errors.New("glob: pattern ends with a trailing backslash")
	ErrUnclosedCharset   = errors.New("glob: unclosed character class")
	ErrEmptyCharset      = errors.New("glob: empty character class")
	ErrInvalidRange      = errors.New("glob: invalid character range")
)
