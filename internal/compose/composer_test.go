package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatterns(t *testing.T) {
	patterns := ParsePatterns([]string{"*.txt", "!*.md", "!"})
	require.Len(t, patterns, 3)

	assert.False(t, patterns[0].Negative)
	assert.Equal(t, "*.txt", patterns[0].body)

	assert.True(t, patterns[1].Negative)
	assert.Equal(t, "*.md", patterns[1].body)

	assert.True(t, patterns[2].Negative)
	assert.Equal(t, "", patterns[2].body)
}

func TestEvaluate_Scenarios(t *testing.T) {
	cases := []struct {
		name     string
		patterns []string
		paths    []string
		want     bool
	}{
		{"simple inclusion", []string{"*.txt"}, []string{"a.txt", "b.rs"}, true},
		{"globstar with exclusion", []string{"src/**", "!*.md"}, []string{"src/main.rs", "src/README.md"}, true},
		{"self-cancelling pattern", []string{"*.txt", "!*.txt"}, []string{"a.txt"}, false},
		{"exclusion does not cancel whole set", []string{"**/test/**", "!**/*.md"}, []string{"a/test/x.rs", "a/test/y.md"}, true},
		{
			"mixed charset and globstar",
			[]string{"src/**/*[._]test.rs"},
			[]string{"src/a/b/util_test.rs", "src/lib.test.rs", "src/main.rs"},
			true,
		},
		{"anchored pattern matches only the root file", []string{"/README.md"}, []string{"README.md", "docs/README.md"}, true},
		{"empty paths", []string{"*.txt"}, nil, false},
		{"empty patterns", nil, []string{"a.txt"}, false},
		{"all negative patterns never match", []string{"!*.txt"}, []string{"a.txt"}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(ParsePatterns(tc.patterns), tc.paths)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluate_OrderIndependent(t *testing.T) {
	paths := []string{"src/main.rs", "src/README.md", "docs/notes.md"}

	a, err := Evaluate(ParsePatterns([]string{"src/**", "!*.md"}), paths)
	require.NoError(t, err)

	b, err := Evaluate(ParsePatterns([]string{"!*.md", "src/**"}), paths)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEvaluate_IdempotentUnderDuplicates(t *testing.T) {
	paths := []string{"src/main.rs"}

	once, err := Evaluate(ParsePatterns([]string{"src/**"}), paths)
	require.NoError(t, err)

	twice, err := Evaluate(ParsePatterns([]string{"src/**", "src/**"}), paths)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestEvaluate_PropagatesPatternErrors(t *testing.T) {
	_, err := Evaluate(ParsePatterns([]string{"[z-a]"}), []string{"a"})
	require.Error(t, err)
}
