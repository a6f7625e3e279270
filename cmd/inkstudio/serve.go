package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bestemiy/inkstudio"
	"github.com/bestemiy/inkstudio/config"
	"github.com/bestemiy/inkstudio/database"
	inkhttp "github.com/bestemiy/inkstudio/http"
	"github.com/bestemiy/inkstudio/imagestore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the inkstudio content API server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.Load(configFiles(cmd), cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repos, closeDB, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB()
	slog.Info("connected to database", "type", cfg.Database.Type)

	images, closeImages, err := imagestore.New(cfg.Uploads)
	if err != nil {
		return fmt.Errorf("create image store: %w", err)
	}
	defer closeImages()

	service := inkstudio.NewService(repos.Tattoos, repos.Content, repos.Testimonials, images)
	guard := inkstudio.NewGuard(cfg.Admin.Password)

	handlerConfig := inkhttp.HandlerConfig{
		CORS: cfg.CORS,
	}
	// The local backend hands out root-relative /uploads/ URLs, so serve
	// that directory from this process.
	if !cfg.Uploads.Remote.Enabled() {
		handlerConfig.UploadsDir = cfg.Uploads.Dir
	}

	handler := inkhttp.NewHandler(&handlerConfig, service, guard)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	remote := cfg.Uploads.Remote.Enabled()
	slog.Info("starting server", "addr", addr, "remote_uploads", remote)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
