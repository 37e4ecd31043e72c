package teeplot

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/teeplot/pkg/errors"
)

func TestTeedSavesAfterScope(t *testing.T) {
	f := newFixture(t, Config{})
	fig, err := Teed(context.Background(), f.tp, lineplot, nil, signalKwargs, func(fig *figure) error {
		assert.Empty(t, f.files(t, "teeplots"))
		fig.SetTitle("scoped")
		return nil
	}, Save(".png"))
	require.NoError(t, err)
	assert.Equal(t, "scoped", fig.title)

	data, err := f.fs.Open("teeplots/viz=lineplot+x=timepoint+y=signal+ext=.png")
	require.NoError(t, err)
	data.Close()
	assert.Equal(t, 1, f.tp.Writes("teeplots", "teeplots/viz=lineplot+x=timepoint+y=signal+ext=.png"))
}

func TestTeedSavesOnScopeError(t *testing.T) {
	f := newFixture(t, Config{})
	boom := stderrors.New("boom")
	_, err := Teed(context.Background(), f.tp, lineplot, nil, nil, func(*figure) error { return boom }, Save(".png"))
	assert.Same(t, boom, err)
	assert.Equal(t, []string{"teeplots/viz=lineplot+ext=.png"}, f.files(t, "teeplots"))
}

func TestTeedSavesOnPanic(t *testing.T) {
	f := newFixture(t, Config{})
	assert.PanicsWithValue(t, "scope", func() {
		_, _ = Teed(context.Background(), f.tp, lineplot, nil, nil, func(*figure) error { panic("scope") }, Save(".png"))
	})
	assert.Equal(t, []string{"teeplots/viz=lineplot+ext=.png"}, f.files(t, "teeplots"))
}

func TestTeedCombinesErrors(t *testing.T) {
	f := newFixture(t, Config{OnCollision: "error"})
	_, err := Tee(context.Background(), f.tp, lineplot, nil, nil, Save(".png"))
	require.NoError(t, err)

	boom := stderrors.New("boom")
	_, err = Teed(context.Background(), f.tp, lineplot, nil, nil, func(*figure) error { return boom }, Save(".png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, errors.Is(err, errors.ErrCodeCollision))

	_, err = Teed(context.Background(), f.tp, lineplot, nil, nil, nil, Save(".png"))
	assert.True(t, errors.Is(err, errors.ErrCodeCollision))
}

func TestTeedRejectsCallback(t *testing.T) {
	f := newFixture(t, Config{})
	called := false
	plotter := func(context.Context, []any, Kwargs) (*figure, error) {
		called = true
		return &figure{}, nil
	}
	_, err := Teed(context.Background(), f.tp, plotter, nil, Kwargs{"teeplot_callback": false}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
	assert.False(t, called)
}

func TestTeedPlotterErrorSkipsSave(t *testing.T) {
	f := newFixture(t, Config{})
	boom := stderrors.New("boom")
	plotter := func(context.Context, []any, Kwargs) (*figure, error) { return nil, boom }
	scoped := false
	_, err := Teed(context.Background(), f.tp, plotter, nil, nil, func(*figure) error { scoped = true; return nil })
	assert.Same(t, boom, err)
	assert.False(t, scoped)
	assert.Empty(t, f.files(t, "teeplots"))
}

func TestWrap(t *testing.T) {
	f := newFixture(t, Config{})
	wrapped := Wrap(f.tp, lineplot, Save(".png"), OutAttr("note", "v2"))

	fig, err := wrapped(context.Background(), nil, Kwargs{"x": "a"})
	require.NoError(t, err)
	require.NotNil(t, fig)

	_, err = wrapped(context.Background(), nil, Kwargs{"x": "a", "teeplot_save": ".svg", "teeplot_subdir": "s"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"teeplots/note=v2+viz=lineplot+x=a+ext=.png",
		"teeplots/s/note=v2+viz=lineplot+x=a+ext=.svg",
	}, f.files(t, "teeplots"))
}

func TestWrapNested(t *testing.T) {
	f := newFixture(t, Config{})
	wrapped := Wrap(f.tp, lineplot, Save(".png"))
	twice := Wrap(f.tp, wrapped, Save(".png"), OnCollision(PolicyFix), Viz("lineplot"))
	_, err := twice(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"teeplots/viz=lineplot+#=1+ext=.png",
		"teeplots/viz=lineplot+ext=.png",
	}, f.files(t, "teeplots"))
}
