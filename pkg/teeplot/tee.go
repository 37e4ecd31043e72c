package teeplot

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/afero"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/observability"
)

// SaveFunc writes the outputs of a deferred call and returns the plotter
// result. Each invocation writes again, subject to the collision policy.
type SaveFunc[F Figure] func(ctx context.Context) (F, error)

// Tee calls plotter with args and kw, applies the post-process step and
// saves the result to every selected format. It returns the plotter result.
//
// Keyword arguments starting with "teeplot_" are stripped from kw and
// override opts. Errors from the plotter are returned unchanged.
func Tee[F Figure](ctx context.Context, tp *Teeplot, plotter Plotter[F], args []any, kw Kwargs, opts ...Option) (F, error) {
	var zero F
	c, err := prepare(tp, plotter, kw, opts)
	if err != nil {
		return zero, err
	}
	if c.opts.Callback {
		return zero, errors.New(errors.ErrCodeInvalidArgument, "deferred save requested; use TeeCallback")
	}
	fig, err := c.plot(ctx, plotter, args)
	if err != nil {
		return fig, err
	}
	return c.save(ctx, fig)
}

// TeeCallback is [Tee] with the save deferred: it plots and post-processes,
// then returns a function that saves.
func TeeCallback[F Figure](ctx context.Context, tp *Teeplot, plotter Plotter[F], args []any, kw Kwargs, opts ...Option) (SaveFunc[F], F, error) {
	c, err := prepare(tp, plotter, kw, opts)
	if err != nil {
		var zero F
		return nil, zero, err
	}
	fig, err := c.plot(ctx, plotter, args)
	if err != nil {
		return nil, fig, err
	}
	return func(ctx context.Context) (F, error) { return c.save(ctx, fig) }, fig, nil
}

// call is one prepared tee call.
type call[F Figure] struct {
	tp       *Teeplot
	opts     Options
	kw       Kwargs
	known    []Format
	selected []Format
	attrs    attributes
	post     func(F) error
}

// prepare resolves everything that does not depend on the plot.
func prepare[F Figure](tp *Teeplot, plotter Plotter[F], kw Kwargs, opts []Option) (*call[F], error) {
	if plotter == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "plotter is nil")
	}
	o := tp.defaults.clone()
	for _, opt := range opts {
		opt(&o)
	}
	forward, reserved := splitKwargs(kw)
	if err := o.applyKwargs(reserved); err != nil {
		return nil, err
	}

	registry, err := tp.EffectiveFormats()
	if err != nil {
		return nil, err
	}
	selected, err := tp.ResolveFormats(o.Save, o.Verbose)
	if err != nil {
		return nil, err
	}
	post, err := resolvePostProcess[F](tp, o.PostProcess)
	if err != nil {
		return nil, err
	}

	viz := o.Viz
	if viz == "" {
		viz = FuncName(plotter)
	}
	attrs, err := buildAttributes(viz, forward, &o)
	if err != nil {
		return nil, err
	}

	return &call[F]{
		tp:       tp,
		opts:     o,
		kw:       forward,
		known:    registry.Formats(),
		selected: selected,
		attrs:    attrs,
		post:     post,
	}, nil
}

func (c *call[F]) plot(ctx context.Context, plotter Plotter[F], args []any) (F, error) {
	fig, err := plotter(ctx, args, c.kw)
	if err != nil {
		return fig, err
	}
	if c.post != nil {
		if err := c.post(fig); err != nil {
			return fig, err
		}
	}
	return fig, nil
}

// save writes fig to every selected format in registry order.
func (c *call[F]) save(ctx context.Context, fig F) (F, error) {
	tp, o := c.tp, &c.opts
	logger := tp.Logger
	hooks := observability.Save()

	folder := filepath.Join(o.OutDir, o.Subdir)
	if err := tp.Fs.MkdirAll(folder, 0o755); err != nil {
		return fig, errors.Wrap(errors.ErrCodeIO, err, "create %s", folder)
	}

	policy := o.OnCollision
	if policy == "" {
		policy = tp.OnCollision
	}
	ropts := RenderOptions{DPI: o.DPI, Transparent: o.Transparent}

	var paths []string
	for _, f := range c.known {
		if !slices.Contains(c.selected, f) {
			hooks.OnSkip(ctx, f.Name(), "not selected")
			if o.Verbose >= 2 {
				logger.Debug("skipping", "format", string(f))
			}
			continue
		}

		path := outPath(o, c.attrs, f)
		if err := tp.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fig, errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Dir(path))
		}
		out, err := tp.claim(ctx, o.OutDir, path, policy)
		if err != nil {
			return fig, err
		}

		start := time.Now()
		size, err := writeFigure(tp.Fs, out, fig, f, ropts)
		if err != nil {
			return fig, err
		}
		hooks.OnSave(ctx, out, f.Name(), size, time.Since(start))
		if o.Verbose >= 1 {
			logger.Info(out)
		}

		if len(c.attrs.private) > 0 {
			if err := writeMeta(tp.Fs, out, c.attrs.private); err != nil {
				return fig, err
			}
		}
		paths = append(paths, out)
	}

	show := tp.interactive
	if o.Show != nil {
		show = *o.Show
	}
	if show && tp.Viewer != nil {
		if err := tp.Viewer(ctx, paths); err != nil {
			return fig, err
		}
	}
	return fig, nil
}

// writeFigure renders fig to path, removing the partial file on failure.
func writeFigure(fs afero.Fs, path string, fig Figure, f Format, opts RenderOptions) (int64, error) {
	file, err := fs.Create(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := fig.Render(file, f, opts); err != nil {
		file.Close()
		fs.Remove(path)
		return 0, errors.Wrap(errors.ErrCodeRender, err, "render %s", path)
	}
	if err := file.Close(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	info, err := fs.Stat(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	return info.Size(), nil
}
