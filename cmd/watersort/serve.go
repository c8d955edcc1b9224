package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "svw.info/watersort/internal/adapters/http"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE:  runServe,
	}
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	uc, closeStore, err := newService(true)
	if err != nil {
		return err
	}
	defer closeStore()

	mux := http.NewServeMux()
	httpadapter.New(uc).Register(mux)

	timeout, _ := cfg.ReadHeaderTimeout()
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpadapter.RequestLogger(logger, mux),
		ReadHeaderTimeout: timeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", cfg.Storage.Kind),
		zap.String("path", cfg.Storage.Path))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}
