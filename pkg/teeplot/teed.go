package teeplot

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// Teed plots, hands the result to scope for further changes, then saves.
// The save runs exactly once when scope returns, fails or panics; scope and
// save errors are combined. A nil scope saves right away.
//
// Requesting a deferred save through teeplot_callback is rejected before
// plotting.
func Teed[F Figure](ctx context.Context, tp *Teeplot, plotter Plotter[F], args []any, kw Kwargs, scope func(F) error, opts ...Option) (fig F, err error) {
	if _, ok := kw[ReservedPrefix+"callback"]; ok {
		return fig, errors.New(errors.ErrCodeInvalidArgument, "teeplot_callback kwarg is not allowed in Teed")
	}

	save, fig, err := TeeCallback(ctx, tp, plotter, args, kw, opts...)
	if err != nil {
		return fig, err
	}
	defer func() {
		if _, serr := save(ctx); serr != nil {
			if err == nil {
				err = serr
			} else {
				err = multierror.Append(err, serr)
			}
		}
	}()

	if scope != nil {
		err = scope(fig)
	}
	return fig, err
}
