package glob

import (
	"fmt"
	"strings"
)

// patternState drives the byte-at-a-time scan across the pattern. It tracks
// how much of a run of '*' has been seen so a subsequent '/' can decide
// between a plain wildcard, a globstar, or a globstar immediately followed
// by another wildcard.
type patternState int

const (
	stateLiteral patternState = iota
	stateWildcard
	statePossibleGlobstar
	stateGlobstar
	stateSuperWild
)

// activeString is one candidate still being matched against the pattern.
// Strings that fail a byte comparison are dropped from the active set and
// never revisited.
type activeString struct {
	idx   int
	bytes []byte
	pos   int
}

func (a *activeString) currentByte() (byte, bool) {
	if a.pos >= len(a.bytes) {
		return 0, false
	}
	return a.bytes[a.pos], true
}

func (a *activeString) advance() {
	a.pos++
}

// consumeByte advances every active string whose current byte satisfies
// pred, and marks the rest as failed, removing them from the active set
// with a swap-remove (order among the remaining active strings does not
// matter to the caller).
func consumeByte(active []activeString, results []bool, pred func(b byte, ok bool) bool) []activeString {
	i := 0
	for i < len(active) {
		s := &active[i]
		b, ok := s.currentByte()
		if pred(b, ok) {
			s.advance()
			i++
			continue
		}
		results[s.idx] = false
		active[i] = active[len(active)-1]
		active = active[:len(active)-1]
	}
	return active
}

// MatchBatch matches pattern against every candidate and reports, for each
// one, whether it matched. It processes the pattern once, advancing all
// still-candidate strings together, which is considerably cheaper than
// matching candidates one at a time when there are many of them.
func MatchBatch(pattern string, candidates []string) ([]bool, error) {
	if len(candidates) == 0 {
		return []bool{}, nil
	}

	results := make([]bool, len(candidates))
	active := make([]activeString, len(candidates))
	for i, c := range candidates {
		active[i] = activeString{idx: i, bytes: []byte(c), pos: 0}
	}

	// A leading / is meaningless once paths are already relative, and a
	// trailing / already matches everything under the directory.
	normalized := strings.TrimPrefix(pattern, "/")
	normalized = strings.TrimSuffix(normalized, "/")
	patternBytes := []byte(normalized)

	var (
		patternIdx   int
		state        = stateLiteral
		questionCount int
	)

	for patternIdx < len(patternBytes) && len(active) > 0 {
		c := patternBytes[patternIdx]

		switch c {
		case '*':
			switch state {
			case stateLiteral:
				state = stateWildcard
			case stateWildcard:
				state = statePossibleGlobstar
			case statePossibleGlobstar:
				// stays; absorbs ***, **** etc.
			case stateGlobstar:
				state = stateSuperWild
			case stateSuperWild:
				// stays
			}
			patternIdx++

		case '/':
			switch state {
			case statePossibleGlobstar:
				state = stateGlobstar
				patternIdx++
			case stateGlobstar, stateSuperWild:
				patternIdx++ // collapse redundant slashes
			case stateWildcard:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, false, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			case stateLiteral:
				active = consumeByte(active, results, func(b byte, ok bool) bool { return ok && b == '/' })
				patternIdx++
			}

		case '?':
			if state == stateLiteral {
				patternIdx++
				active = consumeByte(active, results, func(b byte, ok bool) bool { return ok && b != '/' })
			} else {
				questionCount++
				patternIdx++
			}

		case '\\':
			switch state {
			case stateLiteral:
				if patternIdx+1 >= len(patternBytes) {
					return nil, wrapPatternErr(ErrTrailingBackslash, pattern)
				}
				patternIdx++
				escaped := patternBytes[patternIdx]
				active = consumeByte(active, results, func(b byte, ok bool) bool { return ok && b == escaped })
				patternIdx++
			case stateWildcard, statePossibleGlobstar:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, false, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			case stateGlobstar, stateSuperWild:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, true, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			}

		case '[':
			switch state {
			case stateLiteral:
				cs, end, err := parseCharSet(patternBytes, patternIdx)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = end
				active = consumeByte(active, results, func(b byte, ok bool) bool { return ok && cs.matches(b) })
			case stateWildcard, statePossibleGlobstar:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, false, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			case stateGlobstar, stateSuperWild:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, true, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			}

		default:
			switch state {
			case stateLiteral:
				active = consumeByte(active, results, func(b byte, ok bool) bool { return ok && b == c })
				patternIdx++
			case stateWildcard, statePossibleGlobstar:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, false, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			case stateGlobstar, stateSuperWild:
				next, err := resolveWildcard(patternBytes, patternIdx, &active, results, true, questionCount)
				if err != nil {
					return nil, wrapPatternErr(err, pattern)
				}
				patternIdx = next
				state = stateLiteral
				questionCount = 0
			}
		}
	}

	switch state {
	case stateLiteral:
		for i := range active {
			s := &active[i]
			b, ok := s.currentByte()
			results[s.idx] = !ok || b == '/'
		}
	case stateWildcard, statePossibleGlobstar:
		for i := range active {
			s := &active[i]
			for {
				b, ok := s.currentByte()
				if !ok || b == '/' {
					break
				}
				s.advance()
			}
			results[s.idx] = true
		}
	case stateGlobstar, stateSuperWild:
		for i := range active {
			s := &active[i]
			s.pos = len(s.bytes)
			results[s.idx] = true
		}
	}

	return results, nil
}

func wrapPatternErr(err error, pattern string) error {
	return fmt.Errorf("%w: pattern %q", err, pattern)
}

// resolveWildcard matches the pattern segment starting at pattern[start] (a
// literal run up to the next '*' or the pattern's end) against every active
// string, trying successive anchor positions until one works. globstar
// permits the anchor to cross '/'; requiredChars enforces an exact count of
// non-slash characters consumed by the wildcard run before the anchor,
// coming from any '?' seen while scanning the run.
//
// It returns the pattern index immediately after the matched segment (at
// the next '*', or at len(pattern) if the segment reached the end).
func resolveWildcard(pattern []byte, start int, activePtr *[]activeString, results []bool, globstar bool, requiredChars int) (int, error) {
	if start >= len(pattern) {
		for i := range *activePtr {
			s := &(*activePtr)[i]
			if globstar {
				s.pos = len(s.bytes)
			} else {
				for {
					b, ok := s.currentByte()
					if !ok || b == '/' {
						break
					}
					s.advance()
				}
			}
		}
		return start, nil
	}

	active := *activePtr
	i := 0
	nextPatternIdx := -1

	for i < len(active) {
		s := &active[i]
		startPos := s.pos
		matched := false
		terminating := false

	tryLoop:
		for tryPos := startPos; tryPos <= len(s.bytes); tryPos++ {
			if !globstar && terminating {
				break
			}

			if requiredChars > 0 {
				var charsBefore int
				if globstar {
					count := 0
					pos := tryPos
					for pos > startPos && !(pos-1 < len(s.bytes) && s.bytes[pos-1] == '/') {
						count++
						pos--
					}
					charsBefore = count
				} else {
					charsBefore = tryPos - startPos
				}

				if charsBefore < requiredChars {
					continue
				} else if charsBefore > requiredChars {
					if !globstar {
						break tryLoop
					}
					continue
				}
			}

			if !globstar && tryPos < len(s.bytes) && s.bytes[tryPos] == '/' {
				terminating = true
			}

			pIdx := start
			sIdx := tryPos
			segMatched := true

		segmentLoop:
			for pIdx < len(pattern) && segMatched {
				switch pattern[pIdx] {
				case '\\':
					if pIdx+1 >= len(pattern) {
						return 0, ErrTrailingBackslash
					}
					pIdx++
					escaped := pattern[pIdx]
					if sIdx < len(s.bytes) && s.bytes[sIdx] == escaped {
						sIdx++
						pIdx++
					} else {
						segMatched = false
					}
				case '*':
					if nextPatternIdx == -1 {
						nextPatternIdx = pIdx
					}
					break segmentLoop
				case '[':
					cs, end, err := parseCharSet(pattern, pIdx)
					if err != nil {
						return 0, err
					}
					pIdx = end
					if sIdx < len(s.bytes) && cs.matches(s.bytes[sIdx]) {
						sIdx++
					} else {
						segMatched = false
					}
				case '?':
					pIdx++
					if sIdx < len(s.bytes) && s.bytes[sIdx] != '/' {
						sIdx++
					} else {
						segMatched = false
					}
				default:
					if sIdx < len(s.bytes) && s.bytes[sIdx] == pattern[pIdx] {
						sIdx++
						pIdx++
					} else {
						segMatched = false
					}
				}
			}

			if segMatched && pIdx >= len(pattern) && nextPatternIdx == -1 {
				nextPatternIdx = pIdx
			}

			if segMatched {
				s.pos = sIdx
				matched = true
				break tryLoop
			}
		}

		if matched {
			i++
		} else {
			results[s.idx] = false
			active[i] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	*activePtr = active

	if nextPatternIdx == -1 {
		return len(pattern), nil
	}
	return nextPatternIdx, nil
}
