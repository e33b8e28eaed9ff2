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

	adapterHTTP "github.com/comitanigiacomo/kanso-insights/internal/adapters/handler/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var servePort string

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer a.Close()

	uploadDir, err := uploadDirectory()
	if err != nil {
		return err
	}
	defer os.RemoveAll(uploadDir)

	a.streaks.Start(ctx)
	a.streaks.Enqueue("startup")

	if a.tokens == nil {
		l.Warn("JWT_SECRET is not set, API authentication is disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      adapterHTTP.NewRouter(a.routes(uploadDir, startTime)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AI.FoodTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		l.Info("Kanso Insights running", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	l.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	l.Info("server stopped gracefully")
	return nil
}
