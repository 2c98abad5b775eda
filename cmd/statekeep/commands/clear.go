package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.ClearStorage(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "storage cleared")
			return nil
		},
	}
}
