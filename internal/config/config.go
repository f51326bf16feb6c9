// Package config merges the check command's flags, environment variables,
// and an optional rules file into the final configuration a run evaluates.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrBaseRefRequired is returned when neither -b/--base-ref nor BASE_REF is
// set and --stdin was not requested either.
var ErrBaseRefRequired = errors.New("config: base ref must be provided via -b/--base-ref or the BASE_REF environment variable")

// ErrNoPatterns is returned when the merged pattern list (flags + rules
// file) is empty.
var ErrNoPatterns = errors.New("config: at least one --pattern is required")

// Options is the raw input gathered from the command line.
type Options struct {
	Patterns   []string
	BaseRef    string
	OutputName string
	RulesFile  string
	Stdin      bool
}

// Config is the fully merged, ready-to-run configuration.
type Config struct {
	Patterns   []string
	BaseRef    string
	OutputName string
	// Sink is the PATHFILTER_OUTPUT file to additionally append the
	// named result line to, taken from the environment. Empty means
	// stdout only.
	Sink string
}

// Load merges opts with the process environment (via getenv, so tests can
// supply a fake) and an optional YAML rules file.
func Load(opts Options, getenv func(string) string) (Config, error) {
	baseRef := opts.BaseRef
	if baseRef == "" {
		baseRef = getenv("BASE_REF")
	}
	if baseRef == "" && !opts.Stdin {
		return Config{}, ErrBaseRefRequired
	}

	patterns := append([]string(nil), opts.Patterns...)
	if opts.RulesFile != "" {
		extra, err := loadRulesFile(opts.RulesFile)
		if err != nil {
			return Config{}, err
		}
		patterns = append(patterns, extra...)
	}
	if len(patterns) == 0 {
		return Config{}, ErrNoPatterns
	}

	return Config{
		Patterns:   patterns,
		BaseRef:    baseRef,
		OutputName: opts.OutputName,
		Sink:       getenv("PATHFILTER_OUTPUT"),
	}, nil
}

// loadRulesFile parses a YAML file containing a flat list of glob
// patterns, e.g.:
//
//	- "src/**/*.go"
//	- "!**/*_test.go"
func loadRulesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading rules file %q: %w", path, err)
	}

	var rules []string
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("config: parsing rules file %q: %w", path, err)
	}
	return rules, nil
}
