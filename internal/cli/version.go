package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", rootOpts.Config.ServiceName, rootOpts.Config.AppVersion)
			return err
		},
	}
}
