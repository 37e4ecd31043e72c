package teeplot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/matzehuels/teeplot/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// figure is a Figure that records what was done to it.
type figure struct {
	title  string
	yscale string
	marks  []string
	fail   bool
}

func (f *figure) Render(w io.Writer, format Format, opts RenderOptions) error {
	if f.fail {
		fmt.Fprint(w, "partial")
		return fmt.Errorf("cannot encode %s", format)
	}
	_, err := fmt.Fprintf(w, "%s title=%s dpi=%g transparent=%t", format, f.title, opts.DPI, opts.Transparent)
	return err
}

func (f *figure) SetTitle(title string) { f.title = title }

func (f *figure) SetYScale(scale string) error {
	if scale != "linear" && scale != "log" {
		return fmt.Errorf("unknown scale %q", scale)
	}
	f.yscale = scale
	return nil
}

func (f *figure) Mark(labels ...string) { f.marks = append(f.marks, labels...) }

func lineplot(_ context.Context, _ []any, _ Kwargs) (*figure, error) {
	return &figure{}, nil
}

type fixture struct {
	tp  *Teeplot
	fs  afero.Fs
	log *bytes.Buffer
	env map[string]string
}

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{fs: afero.NewMemMapFs(), log: &bytes.Buffer{}, env: map[string]string{}}
	if cfg.Fs == nil {
		cfg.Fs = f.fs
	} else {
		f.fs = cfg.Fs
	}
	if cfg.LookupEnv == nil {
		cfg.LookupEnv = envLookup(f.env)
	}
	if cfg.Interactive == nil {
		interactive := true
		cfg.Interactive = &interactive
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(f.log)
		cfg.Logger.SetLevel(log.DebugLevel)
	}
	tp, err := New(cfg)
	require.NoError(t, err)
	f.tp = tp
	return f
}

func (f *fixture) files(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := afero.Walk(f.fs, root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func TestNewDefaults(t *testing.T) {
	f := newFixture(t, Config{})
	assert.Equal(t, DefaultRegistry(), f.tp.Formats)
	assert.Equal(t, PolicyIgnore, f.tp.OnCollision)
	assert.Equal(t, DefaultOutDir, f.tp.defaults.OutDir)
	assert.Equal(t, DefaultDPI, f.tp.defaults.DPI)
	assert.True(t, f.tp.defaults.Transparent)
	assert.Equal(t, DefaultVerbose, f.tp.defaults.Verbose)
	assert.NotEmpty(t, f.tp.ID)
	assert.True(t, f.tp.Interactive())
}

func TestNewCollisionPolicy(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		cfg         string
		interactive bool
		want        Policy
	}{
		{"interactive", nil, "", true, PolicyIgnore},
		{"non-interactive", nil, "", false, PolicyWarn},
		{"ci", map[string]string{"GITHUB_ACTIONS": "true"}, "", true, PolicyWarn},
		{"config", nil, "Fix", true, PolicyFix},
		{"env", map[string]string{EnvOnCollision: "ERROR"}, "", true, PolicyError},
		{"env over config", map[string]string{EnvOnCollision: "warn"}, "fix", true, PolicyWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interactive := tt.interactive
			tp, err := New(Config{
				OnCollision: tt.cfg,
				Interactive: &interactive,
				LookupEnv:   envLookup(tt.env),
				Fs:          afero.NewMemMapFs(),
				Logger:      log.New(io.Discard),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tp.OnCollision)
		})
	}
}

func TestNewInvalidCollisionPolicy(t *testing.T) {
	_, err := New(Config{
		LookupEnv: envLookup(map[string]string{EnvOnCollision: "explode"}),
		Fs:        afero.NewMemMapFs(),
		Logger:    log.New(io.Discard),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfig))
	assert.Contains(t, err.Error(), "TEEPLOT_ONCOLLISION=explode")

	_, err = New(Config{OnCollision: "sometimes", LookupEnv: envLookup(nil), Fs: afero.NewMemMapFs()})
	assert.True(t, errors.Is(err, errors.ErrCodeConfig))
}

func TestNewUsesFsFactory(t *testing.T) {
	mem := afero.NewMemMapFs()
	orig := FsFactory
	FsFactory = func() afero.Fs { return mem }
	defer func() { FsFactory = orig }()

	tp, err := New(Config{LookupEnv: envLookup(nil), Logger: log.New(io.Discard)})
	require.NoError(t, err)
	assert.Same(t, mem, tp.Fs)
}
