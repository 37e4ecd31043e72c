package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/teeplot/pkg/teeplot"
)

const signalCSV = `time,signal,noise
0,1.0,0.3
1,2.5,0.1
2,2.0,0.4
3,3.5,0.2
`

const depsDOT = `digraph deps { app -> lib; lib -> core; app -> core }`

type harness struct {
	fs   afero.Fs
	out  *bytes.Buffer
	logs *bytes.Buffer
}

// newHarness routes teeplot's filesystem and the command output into memory.
func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(teeplot.EnvOnCollision, "ignore")
	t.Setenv(teeplot.EnvDraftMode, "false")

	h := &harness{fs: afero.NewMemMapFs(), out: &bytes.Buffer{}, logs: &bytes.Buffer{}}
	stubs := gostub.Stub(&teeplot.FsFactory, func() afero.Fs { return h.fs })
	stubs.Stub(&out, h.out)
	t.Cleanup(stubs.Reset)

	require.NoError(t, afero.WriteFile(h.fs, "signal.csv", []byte(signalCSV), 0o644))
	require.NoError(t, afero.WriteFile(h.fs, "deps.dot", []byte(depsDOT), 0o644))
	return h
}

func (h *harness) run(args ...string) error {
	c := New(h.logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(h.out)
	root.SetErr(h.out)
	return root.ExecuteContext(context.Background())
}

func (h *harness) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := afero.Exists(h.fs, path)
	require.NoError(t, err)
	return ok
}

func TestLineCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("line", "signal.csv", "--x", "time", "--y", "signal", "--save", "svg"))

	want := "teeplots/viz=lineplot+x=time+y=signal+ext=.svg"
	assert.True(t, h.exists(t, want))
	assert.False(t, h.exists(t, "teeplots/viz=lineplot+x=time+y=signal+ext=.png"))
	assert.Contains(t, h.out.String(), "Wrote 1 file(s)")
	assert.Contains(t, h.out.String(), want)
	assert.Contains(t, h.logs.String(), "input=signal.csv")
}

func TestLineCommandFlags(t *testing.T) {
	h := newHarness(t)

	err := h.run("line", "signal.csv", "-x", "time", "-y", "noise", "-t", "Noise Floor",
		"--save", "svg", "--outdir", "figs", "--subdir", "run1", "--attr", "seed=7", "--exclude", "title")
	require.NoError(t, err)

	assert.True(t, h.exists(t, "figs/run1/seed=7+viz=lineplot+x=time+y=noise+ext=.svg"))
}

func TestLinePostProcessSnippet(t *testing.T) {
	h := newHarness(t)

	err := h.run("line", "signal.csv", "--x", "time", "--y", "signal", "--save", "svg", "--post", "teed.set_title('Signal')")
	require.NoError(t, err)

	path := "teeplots/post=teed-set-title-signal+viz=lineplot+x=time+y=signal+ext=.svg"
	require.True(t, h.exists(t, path))
	data, err := afero.ReadFile(h.fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Signal")
}

func TestLineCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"line", "nope.csv", "--x", "time", "--y", "signal"}, "open nope.csv"},
		{"unknown column", []string{"line", "signal.csv", "--x", "time", "--y", "volume", "--save", "svg"}, "volume"},
		{"missing flag", []string{"line", "signal.csv", "--x", "time"}, "required flag"},
		{"bad format", []string{"line", "signal.csv", "--x", "time", "--y", "signal", "--save", "gif"}, "formats are supported"},
		{"bad policy", []string{"line", "signal.csv", "--x", "time", "--y", "signal", "--oncollision", "explode"}, "oncollision"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadTable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ok.csv", []byte("# comment\na, b\n1, 2\n3, 4\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "text.csv", []byte("a,b\n1,x\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "header.csv", []byte("a,b\n"), 0o644))

	table, err := readTable(fs, "ok.csv")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, table["a"])
	assert.Equal(t, []float64{2, 4}, table["b"])

	_, err = readTable(fs, "text.csv")
	assert.ErrorContains(t, err, `"x" is not a number`)

	_, err = readTable(fs, "header.csv")
	assert.ErrorContains(t, err, "at least one row")
}

func TestDotCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("dot", "deps.dot", "--rankdir", "LR", "--save", "svg"))

	want := "teeplots/graph=deps+rankdir=lr+viz=digraph+ext=.svg"
	require.True(t, h.exists(t, want))
	data, err := afero.ReadFile(h.fs, want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestDotCommandRejectsBadRankDir(t *testing.T) {
	h := newHarness(t)
	err := h.run("dot", "deps.dot", "--rankdir", "diagonal", "--save", "svg")
	assert.ErrorContains(t, err, "rankdir must be one of")
}

func TestDraftWritesNothing(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("line", "signal.csv", "--x", "time", "--y", "signal", "--save", "svg", "--draft"))

	assert.False(t, h.exists(t, "teeplots/viz=lineplot+x=time+y=signal+ext=.svg"))
	assert.Contains(t, h.out.String(), "No files written")
}

func TestConfigFlag(t *testing.T) {
	h := newHarness(t)
	cfg := "outdir: plots\nformats:\n  svg: \"on\"\n  pdf: \"off\"\n  png: \"off\"\n"
	require.NoError(t, afero.WriteFile(h.fs, "teeplot.yaml", []byte(cfg), 0o644))

	require.NoError(t, h.run("line", "signal.csv", "--x", "time", "--y", "signal", "--config", "teeplot.yaml"))

	assert.True(t, h.exists(t, "plots/viz=lineplot+x=time+y=signal+ext=.svg"))
	assert.False(t, h.exists(t, "plots/viz=lineplot+x=time+y=signal+ext=.pdf"))
}

func TestFormatsCommand(t *testing.T) {
	h := newHarness(t)
	t.Setenv("TEEPLOT_SVG", "true")

	require.NoError(t, h.run("formats"))

	got := h.out.String()
	assert.Contains(t, got, "Formats")
	assert.Contains(t, got, "TEEPLOT_PDF")
	assert.Contains(t, got, "oncollision")
	assert.Regexp(t, `svg\s+on`, got)
	assert.Regexp(t, `eps\s+defer`, got)
}

func TestPackUnpack(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("pack", "y=signal", "ext=.png", "viz=lineplot", "x=time"))
	assert.Equal(t, "viz=lineplot+x=time+y=signal+ext=.png\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run("unpack", "teeplots/viz=lineplot+x=time+ext=.png"))
	assert.Regexp(t, `ext\s+\.png`, h.out.String())
	assert.Regexp(t, `viz\s+lineplot`, h.out.String())

	assert.ErrorContains(t, h.run("pack", "a/b=1"), "a/b")
	assert.ErrorContains(t, h.run("pack", "novalue"), "key=value")
}

func TestCompletionCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("completion", "bash"))
	assert.Contains(t, h.out.String(), "teeplot")
}
