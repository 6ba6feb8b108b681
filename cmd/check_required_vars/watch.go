package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wincluster-go/config"
	hotreload "wincluster-go/internal/config"
)

func newWatchCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		debounce time.Duration
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run validation whenever group_vars or the inventory change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, debounce, interval)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", hotreload.DefaultHotReloadConfig().Debounce, "quiet period before re-running after a change")
	cmd.Flags().DurationVar(&interval, "poll-interval", 2*time.Second, "mtime polling interval when file notifications are unavailable")
	return cmd
}

// watch validates once, then again after every change until ctx is done.
func (a *app) watch(ctx context.Context, debounce, interval time.Duration) error {
	a.check()
	paths := []string{a.layout.VarsFile(), a.layout.InventoryFile()}
	rerun := func() error {
		fmt.Fprintln(a.stdout)
		code := a.check()
		a.log.Debug("revalidated", zap.Int("exit_code", code))
		return nil
	}

	cfg := hotreload.DefaultHotReloadConfig()
	cfg.Debounce = debounce
	reloader, err := hotreload.NewHotReloader(paths, cfg, a.log.Logger)
	if err == nil {
		reloader.SetReloadHandler(rerun)
		if err = reloader.Start(ctx); err != nil {
			_ = reloader.Stop()
		}
	}

	if err != nil {
		a.log.Warn("file notifications unavailable, polling instead", zap.Error(err), zap.Duration("interval", interval))
		notify(a, daemon.SdNotifyReady)
		w := config.Watcher{Paths: paths, Interval: interval}
		err = w.Start(ctx, func() { _ = rerun() })
	} else {
		notify(a, daemon.SdNotifyReady)
		<-ctx.Done()
		err = reloader.Stop()
	}

	notify(a, daemon.SdNotifyStopping)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// notify is a no-op unless running under systemd with NOTIFY_SOCKET set.
func notify(a *app, state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		a.log.Debug("sd_notify failed", zap.String("state", state), zap.Error(err))
	}
}
