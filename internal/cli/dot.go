package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/render/nodelink"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

// dotCommand creates the dot command for drawing Graphviz files.
func (c *CLI) dotCommand() *cobra.Command {
	var rankDir string

	cmd := &cobra.Command{
		Use:   "dot <file.dot>",
		Short: "Draw a Graphviz DOT file",
		Long: `Lay out a Graphviz DOT file and save the drawing to every enabled format.

The file's base name becomes the "graph" attribute of the output name:

  teeplot dot deps.dot --rankdir LR
  # teeplots/graph=deps+rankdir=lr+viz=digraph+ext=.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tp, err := c.newTeeplot(ctx)
			if err != nil {
				return err
			}
			opts, err := c.callOptions()
			if err != nil {
				return err
			}

			path := args[0]
			data, err := afero.ReadFile(tp.Fs, path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
			}

			kw := teeplot.Kwargs{}
			if rankDir != "" {
				kw["rankdir"] = rankDir
			}
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			opts = append([]teeplot.Option{teeplot.OutAttr("graph", stem)}, opts...)

			return runPlot(ctx, path, func() error {
				_, err := teeplot.Tee(ctx, tp, nodelink.Digraph, []any{data}, kw, opts...)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&rankDir, "rankdir", "r", "", "layout direction: TB, LR, BT, RL")

	return cmd
}
