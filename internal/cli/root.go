package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/observability"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

// rootFlags holds the persistent flags shared by the plotting commands.
// They map onto teeplot call options; unset flags keep the library defaults.
type rootFlags struct {
	config      string   // TOML or YAML config file
	outDir      string   // base output directory
	subdir      string   // subdirectory within outDir
	save        string   // comma-separated formats, "all" for the defaults, "none" for no output
	onCollision string   // collision policy for this run
	attrs       []string // extra filename attributes as key=value
	include     []string // kwargs always named in the filename
	exclude     []string // attributes never named in the filename
	post        string   // post-process snippet
	draft       bool     // suppress all output
	dpi         float64  // raster resolution
	opaque      bool     // white background instead of transparent
	verbose     bool     // debug logging and per-format skip reports
}

func (f *rootFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "config file (.toml, .yaml)")
	pf.StringVarP(&f.outDir, "outdir", "o", "", "output directory (default \"teeplots\")")
	pf.StringVar(&f.subdir, "subdir", "", "subdirectory within the output directory")
	pf.StringVarP(&f.save, "save", "s", "", "formats to write: comma-separated (pdf,png,svg,ps,eps), all, or none")
	pf.StringVar(&f.onCollision, "oncollision", "", "collision policy: error, fix, ignore, warn")
	pf.StringArrayVarP(&f.attrs, "attr", "a", nil, "extra filename attribute key=value (repeatable)")
	pf.StringSliceVar(&f.include, "include", nil, "attributes always included in the filename")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "attributes never included in the filename")
	pf.StringVar(&f.post, "post", "", "post-process snippet, e.g. \"teed.set_title('Signal')\"")
	pf.BoolVar(&f.draft, "draft", false, "draft mode: write nothing")
	pf.Float64Var(&f.dpi, "dpi", 0, "raster resolution (default 300)")
	pf.BoolVar(&f.opaque, "opaque", false, "use an opaque white background")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
}

// newTeeplot builds the Teeplot for a command from the config file and flags.
func (c *CLI) newTeeplot(ctx context.Context) (*teeplot.Teeplot, error) {
	logger := loggerFromContext(ctx)
	if c.flags.verbose {
		logger.SetLevel(LogDebug)
	}

	cfg := teeplot.Config{
		Logger: logger,
		Fs:     teeplot.FsFactory(),
	}
	if c.flags.config != "" {
		fc, err := teeplot.LoadConfig(cfg.Fs, c.flags.config)
		if err != nil {
			return nil, err
		}
		if err := fc.Apply(&cfg); err != nil {
			return nil, err
		}
		logger.Debug("Loaded config", "path", c.flags.config)
	}
	if c.flags.draft {
		cfg.DraftMode = true
	}

	tp, err := teeplot.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Teeplot ready", "id", tp.ID, "oncollision", tp.OnCollision)
	return tp, nil
}

// callOptions converts the flags into teeplot call options.
func (c *CLI) callOptions() ([]teeplot.Option, error) {
	f := &c.flags
	var opts []teeplot.Option

	if f.outDir != "" {
		opts = append(opts, teeplot.OutDir(f.outDir))
	}
	if f.subdir != "" {
		opts = append(opts, teeplot.Subdir(f.subdir))
	}
	if f.save != "" {
		opts = append(opts, teeplot.Save(parseSave(f.save)))
	}
	if f.onCollision != "" {
		policy, err := teeplot.ParsePolicy(f.onCollision)
		if err != nil {
			return nil, err
		}
		opts = append(opts, teeplot.OnCollision(policy))
	}
	for _, attr := range f.attrs {
		k, v, ok := strings.Cut(attr, "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "attribute %q must be key=value", attr)
		}
		opts = append(opts, teeplot.OutAttr(k, v))
	}
	if len(f.include) > 0 {
		opts = append(opts, teeplot.OutInclude(f.include...))
	}
	if len(f.exclude) > 0 {
		opts = append(opts, teeplot.OutExclude(f.exclude...))
	}
	if f.post != "" {
		opts = append(opts, teeplot.PostProcess(f.post))
	}
	if f.dpi > 0 {
		opts = append(opts, teeplot.DPI(f.dpi))
	}
	if f.opaque {
		opts = append(opts, teeplot.Transparent(false))
	}

	if f.verbose {
		opts = append(opts, teeplot.Verbose(2))
	}
	opts = append(opts, teeplot.Show(false))
	return opts, nil
}

// parseSave maps the --save flag onto a teeplot save selection.
func parseSave(s string) any {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "default", "true":
		return true
	case "none", "false":
		return false
	}
	return strings.Split(s, ",")
}

// fileCollector records the paths written during a command.
type fileCollector struct {
	observability.NoopSaveHooks
	paths []string
}

func (fc *fileCollector) OnSave(_ context.Context, path, _ string, _ int64, _ time.Duration) {
	fc.paths = append(fc.paths, path)
}

func (fc *fileCollector) OnCollision(ctx context.Context, path, policy string, count int) {
	loggerFromContext(ctx).Debug("Collision", "path", path, "policy", policy, "writes", count)
}

// runPlot registers a collector for saved files, runs plot and prints a
// summary of what was written.
func runPlot(ctx context.Context, what string, plot func() error) error {
	collector := &fileCollector{}
	observability.SetSaveHooks(collector)
	defer observability.Reset()

	t := startTimer(loggerFromContext(ctx))
	if err := plot(); err != nil {
		return err
	}
	t.done("Plotted", "input", what, "files", len(collector.paths))

	if len(collector.paths) == 0 {
		printWarning("No files written")
		return nil
	}
	printSuccess("Wrote %d file(s)", len(collector.paths))
	for _, p := range collector.paths {
		printFile(p)
	}
	return nil
}
