package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeplot/pkg/teeplot"
)

// formatsCommand creates the formats command listing the format registry.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Show output formats and whether they are enabled",
		Long: `Show every output format with its state after environment overrides.

A format is "on" or "off" when forced, and "defer" when it follows the call's
save selection. Set TEEPLOT_<FORMAT> to true, false or none to change it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tp, err := c.newTeeplot(cmd.Context())
			if err != nil {
				return err
			}
			reg, err := tp.EffectiveFormats()
			if err != nil {
				return err
			}

			printTitle("Formats")
			for _, f := range reg.Formats() {
				state := reg[f]
				printKeyValue(f.Name(), stateStyle(state).Render(state.String())+"  "+StyleDim.Render(teeplot.FormatEnvVar(f)))
			}
			printKeyValue("oncollision", string(tp.OnCollision))
			if tp.DraftMode {
				printKeyValue("draft", "true")
			}
			return nil
		},
	}
}

func stateStyle(s teeplot.State) lipgloss.Style {
	switch s {
	case teeplot.On:
		return styleStateOn
	case teeplot.Off:
		return styleStateOff
	}
	return styleStateDefer
}
