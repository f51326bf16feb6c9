package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	pathfiltertui "github.com/arcflow-dev/pathfilter/internal/tui"
	"github.com/arcflow-dev/pathfilter/internal/changeset"
	"github.com/arcflow-dev/pathfilter/internal/compose"
	"github.com/arcflow-dev/pathfilter/internal/config"
	"github.com/arcflow-dev/pathfilter/internal/emit"
	"github.com/arcflow-dev/pathfilter/internal/errsystem"
	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/spf13/cobra"
)

var checkCmd = newCheckCommand()

// newCheckCommand builds the check subcommand. It is factored out of the
// package-level checkCmd so tests can construct independent instances
// without flag state leaking between table-driven cases.
func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether the current changeset matches a set of glob patterns",
		Long: `Check whether the current changeset matches a set of glob patterns.

The changeset defaults to the output of ` + "`git diff --name-only <base-ref>..HEAD`" + `,
or, with --stdin, a newline-separated list of paths read from standard input.

Exit code is 0 whether or not anything matched, and non-zero on error. The
result is reported on stdout as "true" or "false" (or, with --output-name,
"name=true"/"name=false"); with --output-name the line is also appended to
the file named by the PATHFILTER_OUTPUT environment variable if it is set.

Examples:
  pathfilter check -p 'src/**/*.go' -b main
  git diff --name-only main..HEAD | pathfilter check -p '**/*.md' --stdin
  pathfilter check -p 'src/**' --rules .pathfilter.yaml -b main -o src_changed`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			runCheck(ctx, cmd)
		},
	}
	cmd.Flags().StringArrayP("pattern", "p", nil, "glob pattern to match against (repeatable); a leading ! negates it")
	cmd.Flags().StringP("base-ref", "b", "", "git ref to diff against HEAD (falls back to BASE_REF)")
	cmd.Flags().StringP("output-name", "o", "", "switch to named output mode: <name>=<bool>")
	cmd.Flags().String("rules", "", "YAML file of additional patterns, merged after --pattern")
	cmd.Flags().Bool("stdin", false, "read newline-separated candidate paths from stdin instead of running git diff")
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command) {
	l := env.NewLogger(cmd)

	patterns, _ := cmd.Flags().GetStringArray("pattern")
	baseRef, _ := cmd.Flags().GetString("base-ref")
	outputName, _ := cmd.Flags().GetString("output-name")
	rulesFile, _ := cmd.Flags().GetString("rules")
	useStdin, _ := cmd.Flags().GetBool("stdin")

	cfg, err := config.Load(config.Options{
		Patterns:   patterns,
		BaseRef:    baseRef,
		OutputName: outputName,
		RulesFile:  rulesFile,
		Stdin:      useStdin,
	}, os.Getenv)
	if err != nil {
		errsystem.New(errsystem.ErrConfig, err).ShowErrorAndExit()
	}
	l.Debug("loaded %d pattern(s), base ref %q, sink %q", len(cfg.Patterns), cfg.BaseRef, cfg.Sink)

	var paths []string
	if useStdin {
		paths, err = changeset.FromReader(os.Stdin)
	} else {
		paths, err = changeset.FromGitDiff(ctx, ".", cfg.BaseRef)
	}
	if err != nil {
		errsystem.New(errsystem.ErrChangeSource, err, errsystem.WithContextMessage("base ref "+cfg.BaseRef)).ShowErrorAndExit()
	}
	l.Debug("enumerated %d candidate path(s)", len(paths))

	matched, err := compose.Evaluate(compose.ParsePatterns(cfg.Patterns), paths)
	if err != nil {
		errsystem.New(errsystem.ErrBadPattern, err).ShowErrorAndExit()
	}

	result := emit.Result{Matched: matched, Name: cfg.OutputName, Sink: cfg.Sink}
	if err := result.Write(os.Stdout); err != nil {
		errsystem.New(errsystem.ErrEmit, err).ShowErrorAndExit()
	}

	if tui.HasTTY {
		if matched {
			pathfiltertui.ShowMatch("%d candidate path(s) matched", len(paths))
		} else {
			pathfiltertui.ShowNoMatch("no candidate path matched")
		}
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
