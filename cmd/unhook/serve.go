package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/unhook/internal/api"
	"github.com/chris/unhook/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and daily reminder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		sched := scheduler.New(a.tracker, a.loc, a.cfg.WebhookURL)
		if err := sched.Start(a.cfg.ReminderCron); err != nil {
			return err
		}
		defer sched.Stop()

		srv := &http.Server{
			Addr:    a.cfg.ListenAddr,
			Handler: api.NewServer(a.coach, a.tracker, a.db, a.loc, logger).Router(),
		}

		errc := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", a.cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errc:
			return err
		case <-sig:
		}

		log.Println("shutting down.")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
