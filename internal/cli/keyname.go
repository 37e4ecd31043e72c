package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/keyname"
)

// packCommand creates the pack command, which prints the filename for a set
// of attributes.
func (c *CLI) packCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <key=value>...",
		Short: "Build a descriptive filename from attributes",
		Example: `  teeplot pack viz=lineplot x=time y=signal ext=.png
  # viz=lineplot+x=time+y=signal+ext=.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs := make(map[string]string, len(args))
			for _, arg := range args {
				k, v, ok := strings.Cut(arg, keyname.KeyValueSeparator)
				if !ok || k == "" {
					return errors.New(errors.ErrCodeInvalidArgument, "attribute %q must be key=value", arg)
				}
				if err := errors.ValidateAttrKey(k); err != nil {
					return err
				}
				if err := errors.ValidateAttrValue(k, v); err != nil {
					return err
				}
				attrs[k] = v
			}
			printLine(keyname.Pack(attrs))
			return nil
		},
	}
}

// unpackCommand creates the unpack command, which prints the attributes of
// a descriptive filename.
func (c *CLI) unpackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <name>",
		Short: "Show the attributes of a descriptive filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs := keyname.Unpack(args[0])
			if len(attrs) == 0 {
				printWarning("No attributes in %s", args[0])
				return nil
			}
			for _, k := range slices.Sorted(maps.Keys(attrs)) {
				printKeyValue(k, attrs[k])
			}
			return nil
		},
	}
}
