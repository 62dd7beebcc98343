package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chord and keyboard API over HTTP and WebSocket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := cfg
		if cmd.Flags().Changed("addr") {
			c.Server.Addr = serveAddr
		}
		srv := server.New(c, server.WithLogger(slog.Default()))

		if serveWatch {
			if configPath == "" {
				slog.Warn("--watch needs --config, not watching")
			} else {
				go watchConfig(ctx, srv)
			}
		}

		return srv.ListenAndServe(ctx)
	},
}

func watchConfig(ctx context.Context, srv *server.Server) {
	addr := srv.Config().Server.Addr
	err := config.Watch(ctx, configPath, slog.Default(), func(c config.Config) {
		// The listener is already bound.
		c.Server.Addr = addr
		srv.SetConfig(c)
	})
	if err != nil && ctx.Err() == nil {
		slog.Error("watching config", "path", configPath, "error", err)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload the config file when it changes")
}
