package teeplot

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// Defaults applied by [Config.SetDefaults].
const (
	DefaultOutDir  = "teeplots"
	DefaultDPI     = 300.0
	DefaultVerbose = 1
)

// FsFactory returns the filesystem used when [Config.Fs] is nil.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Viewer displays the files a call saved. It is called after saving when
// the call's show option resolves to true.
type Viewer func(ctx context.Context, paths []string) error

// Config configures a [Teeplot].
type Config struct {
	// Formats is the initial format registry. Nil selects DefaultRegistry.
	Formats Registry

	// OnCollision is the default collision policy. TEEPLOT_ONCOLLISION takes
	// precedence; when both are empty the policy is "warn" on CI or in
	// non-interactive sessions and "ignore" otherwise.
	OnCollision string

	// DraftMode suppresses all output.
	DraftMode bool

	// Per-call option defaults.
	OutDir      string
	DPI         float64
	Transparent *bool
	Verbose     *int

	// Interactive overrides terminal detection on stdin.
	Interactive *bool

	// Namespace holds the receivers available to post-process snippets,
	// besides "teed".
	Namespace map[string]any

	Viewer    Viewer
	Logger    *log.Logger
	Fs        afero.Fs
	LookupEnv func(string) (string, bool)
}

// SetDefaults fills zero fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Formats == nil {
		c.Formats = DefaultRegistry()
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.DPI == 0 {
		c.DPI = DefaultDPI
	}
	if c.Transparent == nil {
		t := true
		c.Transparent = &t
	}
	if c.Verbose == nil {
		v := DefaultVerbose
		c.Verbose = &v
	}
	if c.LookupEnv == nil {
		c.LookupEnv = os.LookupEnv
	}
	if c.Interactive == nil {
		i := stdinIsTerminal()
		c.Interactive = &i
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Fs == nil {
		c.Fs = FsFactory()
	}
}

// Teeplot holds the state shared by tee calls: the format registry, the
// collision policy and the per-output-root write history.
//
// Exported fields may be changed between calls; they are read at every call.
type Teeplot struct {
	// Formats is the format registry. Environment overrides are applied on
	// top of it at each call without modifying it.
	Formats Registry

	// OnCollision is the default collision policy. Assigning an invalid
	// policy is reported when a collision occurs.
	OnCollision Policy

	// DraftMode suppresses all output.
	DraftMode bool

	Namespace map[string]any
	Viewer    Viewer
	Logger    *log.Logger
	Fs        afero.Fs

	// ID identifies this Teeplot in logs.
	ID string

	defaults    Options
	interactive bool
	lookupEnv   func(string) (string, bool)
	histories   map[string]history
}

// New creates a Teeplot from cfg. An invalid collision policy, from cfg or
// from TEEPLOT_ONCOLLISION, is a CONFIG error.
func New(cfg Config) (*Teeplot, error) {
	cfg.SetDefaults()

	policy := autoPolicy(cfg.LookupEnv, *cfg.Interactive)
	source := "default"
	if value, ok := cfg.LookupEnv(EnvOnCollision); ok {
		policy = Policy(strings.ToLower(strings.TrimSpace(value)))
		source = "env var " + EnvOnCollision
	} else if cfg.OnCollision != "" {
		policy = Policy(strings.ToLower(strings.TrimSpace(cfg.OnCollision)))
		source = "config"
	}
	if !policy.Valid() {
		return nil, errors.New(errors.ErrCodeConfig, "invalid %s value oncollision=%s", source, string(policy))
	}

	id := uuid.NewString()
	tp := &Teeplot{
		Formats:     cfg.Formats.Clone(),
		OnCollision: policy,
		DraftMode:   cfg.DraftMode,
		Namespace:   cfg.Namespace,
		Viewer:      cfg.Viewer,
		Logger:      cfg.Logger.With("run", id[:8]),
		Fs:          cfg.Fs,
		ID:          id,
		defaults: Options{
			DPI:         cfg.DPI,
			OutDir:      cfg.OutDir,
			Transparent: *cfg.Transparent,
			Verbose:     *cfg.Verbose,
		},
		interactive: *cfg.Interactive,
		lookupEnv:   cfg.LookupEnv,
		histories:   make(map[string]history),
	}
	return tp, nil
}

// Interactive reports whether the Teeplot treats the session as interactive.
func (tp *Teeplot) Interactive() bool {
	return tp.interactive
}
