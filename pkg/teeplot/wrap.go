package teeplot

import "context"

// Wrap returns a plotter that routes every call through [Tee] with opts.
// Reserved kwargs of each call override opts. The "viz" attribute is the
// name of plotter, unless opts set one.
func Wrap[F Figure](tp *Teeplot, plotter Plotter[F], opts ...Option) Plotter[F] {
	bound := append([]Option{Viz(FuncName(plotter))}, opts...)
	return func(ctx context.Context, args []any, kw Kwargs) (F, error) {
		return Tee(ctx, tp, plotter, args, kw, bound...)
	}
}
