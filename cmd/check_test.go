package cmd

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCheckCommand wraps a fresh check command in a throwaway parent
// carrying the same persistent flags rootCmd declares, so env.NewLogger
// sees --log-level/--log-json exactly as it would when checkCmd is run
// as a real child of rootCmd.
func newTestCheckCommand(args []string) *cobra.Command {
	parent := &cobra.Command{Use: "pathfilter"}
	parent.PersistentFlags().String("log-level", "info", "")
	parent.PersistentFlags().Bool("log-json", false, "")
	check := newCheckCommand()
	parent.AddCommand(check)
	parent.SetArgs(append([]string{"check"}, args...))
	return parent
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "git %v: %s", args, out)
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())

	scanner := bufio.NewScanner(r)
	var out string
	for scanner.Scan() {
		out += scanner.Text() + "\n"
	}
	return out
}

func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "commit", "--allow-empty", "-q", "-m", "base")
	runGit(t, dir, "tag", "base")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "add files")
	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestCheckCommand_Scenarios(t *testing.T) {
	requireGit(t)

	cases := []struct {
		name     string
		patterns []string
		output   string
		want     string
	}{
		{"simple inclusion", []string{"-p", "src/**"}, "", "true\n"},
		{"globstar with exclusion", []string{"-p", "src/**", "-p", "!*.md"}, "", "true\n"},
		{"self-cancelling pattern", []string{"-p", "src/**/*.go", "-p", "!src/**/*.go"}, "", "false\n"},
		{"no match", []string{"-p", "*.txt"}, "", "false\n"},
		{"named output", []string{"-p", "src/**"}, "src_changed", "src_changed=true\n"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			dir := setupRepo(t)
			chdir(t, dir)

			args := append([]string{}, tc.patterns...)
			args = append(args, "-b", "base")
			if tc.output != "" {
				args = append(args, "-o", tc.output)
			}
			cmd := newTestCheckCommand(args)

			got := captureStdout(t, func() {
				require.NoError(t, cmd.Execute())
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckCommand_SinkFile(t *testing.T) {
	requireGit(t)

	dir := setupRepo(t)
	chdir(t, dir)

	sink := filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("PATHFILTER_OUTPUT", sink)

	cmd := newTestCheckCommand([]string{"-p", "src/**", "-b", "base", "-o", "src_changed"})

	captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	assert.Equal(t, "src_changed=true\n", string(data))
}

func TestCheckCommand_Stdin(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("src/main.go\nREADME.md\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	origStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = origStdin }()

	cmd := newTestCheckCommand([]string{"-p", "src/**", "--stdin"})

	got := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Equal(t, "true\n", got)
}
