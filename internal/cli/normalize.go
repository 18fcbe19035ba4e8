package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tourplan/internal/modules/pricing"
)

func init() {
	cmd := &cobra.Command{
		Use:   "normalize <time>...",
		Short: "Print the 24-hour start time of time or time-range strings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runNormalize,
	}
	RootCmd.AddCommand(cmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	for _, in := range args {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", in, pricing.NormalizeTime(in)); err != nil {
			return err
		}
	}
	return nil
}
