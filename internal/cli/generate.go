package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/langgate/internal/artifacts"
)

type generateOptions struct {
	watch    bool
	debounce int
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := generateOptions{
		debounce: int(artifacts.DefaultWatchDebounce.Milliseconds()),
	}
	cmd := &cobra.Command{
		Use:   "generate <path>",
		Short: "Write locations.conf and proxy-headers.conf into <path>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, _, err := root.loadRegistry()
			if err != nil {
				return err
			}
			res, err := artifacts.Write(args[0], reg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, res); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}

			registryPath := root.registryFile(cfg)
			if registryPath == "" {
				return errors.New("--watch needs a registry file (--registry or registry.file)")
			}
			w, err := artifacts.NewWatcher(artifacts.WatchOptions{
				RegistryPath: registryPath,
				OutDir:       args[0],
				Debounce:     time.Duration(opts.debounce) * time.Millisecond,
				OnGenerate: func(res artifacts.Result, err error) {
					if err != nil {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
						return
					}
					_, _ = fmt.Fprintln(out, res)
				},
			})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}
	fs := cmd.Flags()
	fs.BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever the registry file changes")
	fs.IntVar(&opts.debounce, "debounce-ms", opts.debounce, "watch debounce in milliseconds")
	return cmd
}
