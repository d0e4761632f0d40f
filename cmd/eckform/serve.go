package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xelth-com/eckform/internal/handlers"
	"github.com/xelth-com/eckform/internal/pagination"
	"github.com/xelth-com/eckform/internal/utils"
	"github.com/xelth-com/eckform/internal/websocket"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the record API and change notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			return serve(a, port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from PORT)")
	return cmd
}

func serve(a *app, port string) error {
	logger := a.logger
	logger.Info("🚀 Application starting...")

	st, closeStore, err := openStore(a.cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	view := pagination.NewView(st, a.cfg.Store.PageSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub(logger.Named("ws"))
	go hub.Run(ctx)

	router := handlers.NewRouter(st, view, hub, logger.Named("http"))
	defer router.Close()

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("✅ Application ready!",
			zap.String("port", port),
			zap.Int("records", st.Count()),
			zap.Int64("next_id", st.NextID()),
		)
		for _, u := range utils.FormURLs(port) {
			logger.Info("🌐 Listening", zap.String("url", u))
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-shutdown:
		logger.Warn("⚠️ Received signal. Shutting down gracefully...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	cancel()

	logger.Info("✅ Shutdown complete")
	return nil
}
