package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/pocketkeeper/internal/app"
	"github.com/dmitrijs2005/pocketkeeper/internal/bus"
	"github.com/spf13/cobra"
)

func (r *runner) backupCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "backup", Short: "Copy collections to and from S3-compatible storage"}

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Upload every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := r.app.Backup.Push(cmd.Context())
			if err != nil {
				return r.report(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %s\n", strings.Join(names, ", "))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pull [collection...]",
		Short: "Replace local collections with the remote copies",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = app.Collections
			}
			pulled, err := r.app.Backup.Pull(cmd.Context(), names)
			if err != nil {
				return r.report(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pulled %s\n", strings.Join(pulled, ", "))
			return nil
		},
	})
	return cmd
}

func (r *runner) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report collections changed by other processes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			sub := bus.On(r.app.Bus, bus.EventCollectionChanged, func(name string) {
				fmt.Fprintf(w, "%s changed\n", accentStyle.Render(name))
			})
			defer sub.Remove()

			err := r.app.Watch(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return r.report(cmd, err)
		},
	}
}
