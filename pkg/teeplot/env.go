package teeplot

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// Environment variables read by teeplot.
const (
	// EnvOnCollision sets the default collision policy.
	EnvOnCollision = "TEEPLOT_ONCOLLISION"
	// EnvDraftMode suppresses all output when truthy.
	EnvDraftMode = "TEEPLOT_DRAFTMODE"
	// EnvFormatPrefix prefixes the per-format override, e.g. TEEPLOT_PNG.
	EnvFormatPrefix = "TEEPLOT_"
)

// ciEnvVars are set by common CI providers.
var ciEnvVars = []string{"CI", "TRAVIS", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// FormatEnvVar returns the environment variable that overrides f,
// e.g. TEEPLOT_PNG for ".png".
func FormatEnvVar(f Format) string {
	return EnvFormatPrefix + strings.ToUpper(f.Name())
}

// isCI reports whether any well-known CI variable is set.
func isCI(lookup func(string) (string, bool)) bool {
	for _, name := range ciEnvVars {
		if _, ok := lookup(name); ok {
			return true
		}
	}
	return false
}

// stdinIsTerminal stands in for "running in an interactive session".
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// EffectiveFormats returns a copy of the registry with the per-format
// environment overrides applied.
func (tp *Teeplot) EffectiveFormats() (Registry, error) {
	formats := tp.Formats.Clone()
	for _, f := range formats.Formats() {
		name := FormatEnvVar(f)
		value, ok := tp.lookupEnv(name)
		if !ok {
			continue
		}
		state, err := ParseState(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid env var value %s=%s", name, value)
		}
		formats[f] = state
	}
	return formats, nil
}

// draftMode reports whether output is suppressed, by field or environment.
func (tp *Teeplot) draftMode() (bool, error) {
	if tp.DraftMode {
		return true, nil
	}
	value, ok := tp.lookupEnv(EnvDraftMode)
	if !ok {
		return false, nil
	}
	b, err := ParseBool(value)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid env var value %s=%s", EnvDraftMode, value)
	}
	return b, nil
}

// autoPolicy picks the collision policy when none is configured: warn in CI
// or non-interactive sessions, ignore otherwise.
func autoPolicy(lookup func(string) (string, bool), interactive bool) Policy {
	if isCI(lookup) || !interactive {
		return PolicyWarn
	}
	return PolicyIgnore
}
