package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func counterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Read or change the persisted counter",
	}

	// Each mutating subcommand prints the resulting snapshot.
	op := func(use, short string, fn func()) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fn()
				printCounter(cmd.OutOrStdout(), appCtx.Counter.State())
				return nil
			},
		}
	}

	cmd.AddCommand(
		op("show", "Print the current count", func() {}),
		op("inc", "Add one", func() { appCtx.Counter.Increment() }),
		op("dec", "Subtract one", func() { appCtx.Counter.Decrement() }),
		op("reset", "Set the count to zero", func() { appCtx.Counter.Reset() }),
		&cobra.Command{
			Use:   "set <n>",
			Short: "Set the count to n",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be an integer: %q", args[0])
				}
				appCtx.Counter.SetCount(n)
				printCounter(cmd.OutOrStdout(), appCtx.Counter.State())
				return nil
			},
		},
	)
	return cmd
}
