package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"statekeep/internal/app"
)

var (
	home       string
	backend    string
	passphrase string
	logLevel   string

	appCtx *app.Wire
)

// NewRootCmd builds the command tree. Flag variables are reset on every call.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statekeep",
		Short:         "Persisted counter and profile state",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.Open(app.Config{
				Home:       home,
				Backend:    backend,
				Passphrase: passphrase,
				LogLevel:   logLevel,
			})
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.statekeep)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file, sqlite or memory (default file)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to seal stored state")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default warn)")

	root.AddCommand(counterCmd(), userCmd(), watchCmd(), clearCmd())
	return root
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return executeContext(ctx, NewRootCmd())
}

// executeContext runs root and closes the app whether or not the command failed.
func executeContext(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if appCtx != nil {
		err = errors.Join(err, appCtx.Close())
		appCtx = nil
	}
	return err
}
