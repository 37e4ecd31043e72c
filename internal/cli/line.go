package cli

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/render/chart"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

type lineOpts struct {
	x     string
	y     string
	title string
}

// lineCommand creates the line command for plotting CSV columns.
func (c *CLI) lineCommand() *cobra.Command {
	opts := lineOpts{}

	cmd := &cobra.Command{
		Use:   "line <file.csv>",
		Short: "Plot two CSV columns as a line chart",
		Long: `Plot column --y over column --x of a CSV file with a header row.

The chart is saved to every enabled format, named after its attributes:

  teeplot line signal.csv --x time --y signal
  # teeplots/viz=lineplot+x=time+y=signal+ext=.pdf
  # teeplots/viz=lineplot+x=time+y=signal+ext=.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLine(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.x, "x", "x", "", "column for the x axis (required)")
	cmd.Flags().StringVarP(&opts.y, "y", "y", "", "column for the y axis (required)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "chart title")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func (c *CLI) runLine(cmd *cobra.Command, path string, opts lineOpts) error {
	ctx := cmd.Context()

	tp, err := c.newTeeplot(ctx)
	if err != nil {
		return err
	}
	callOpts, err := c.callOptions()
	if err != nil {
		return err
	}

	data, err := readTable(tp.Fs, path)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("Read table", "path", path, "columns", data.Columns())

	kw := teeplot.Kwargs{"data": data, "x": opts.x, "y": opts.y}
	if opts.title != "" {
		kw["title"] = opts.title
	}

	return runPlot(ctx, path, func() error {
		_, err := teeplot.Tee(ctx, tp, chart.LinePlot, nil, kw, callOpts...)
		return err
	})
}

// readTable reads a CSV file with a header row into numeric columns.
// Empty cells are rejected; every cell must parse as a float.
func readTable(fs afero.Fs, path string) (chart.Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "parse %s", path)
	}
	if len(records) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "%s: need a header and at least one row", path)
	}

	header := records[0]
	table := make(chart.Table, len(header))
	for _, row := range records[1:] {
		for i, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidArgument, "%s: column %s: %q is not a number", path, header[i], cell)
			}
			table[header[i]] = append(table[header[i]], v)
		}
	}
	return table, nil
}
