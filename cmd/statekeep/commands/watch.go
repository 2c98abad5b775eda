package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"statekeep/internal/domain"
	"statekeep/internal/store"
)

// watchCmd re-reads state written by other statekeep processes and prints
// each new snapshot until interrupted.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print state whenever another process changes it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := appCtx.WatchDir()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			printCounter(out, appCtx.Counter.State())
			printUser(out, appCtx.User.State())

			defer appCtx.Counter.Subscribe(func(next, _ domain.CounterState) { printCounter(out, next) })()
			defer appCtx.User.Subscribe(func(next, _ domain.UserState) { printUser(out, next) })()

			log := appCtx.Log.Named("watch")
			return store.Watch(cmd.Context(), dir, log, func(key string) {
				var err error
				switch key {
				case domain.CounterStorageKey:
					err = appCtx.Counter.Container().Rehydrate()
				case domain.UserStorageKey:
					err = appCtx.User.Container().Rehydrate()
				default:
					return
				}
				// The container already fell back to its default and logged why.
				if err != nil {
					log.Debug("reloaded with default", zap.String("key", key), zap.Error(err))
				}
			})
		},
	}
}
