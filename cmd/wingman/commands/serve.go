// ABOUTME: Serve command: runs the HTTP backend until interrupted
// ABOUTME: Wires config, storage, the context engine, and the Ollama client
package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wingmanhq/wingman-backend/internal/config"
	"github.com/wingmanhq/wingman-backend/internal/core"
	"github.com/wingmanhq/wingman-backend/internal/llm"
	"github.com/wingmanhq/wingman-backend/internal/server"
	"github.com/wingmanhq/wingman-backend/internal/storage"
)

var (
	serveHost string
	servePort int
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP backend",
		Long: `Start the Wingman HTTP API.

The server reads its configuration from the environment (and a .env file
when present). Flags override the WINGMAN_HOST and WINGMAN_PORT variables.`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides WINGMAN_HOST)")
	cmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides WINGMAN_PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.NewStorageWithPath(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	client := llm.NewClient(&llm.ClientConfig{
		BaseURL:         cfg.OllamaURL,
		Model:           cfg.Model,
		GenerateTimeout: cfg.GenerateTimeout,
		PullTimeout:     cfg.PullTimeout,
	})
	builder := core.NewBuilder(store, nil, cfg.ChatHistoryLimit, cfg.RecentWindowDays)
	handler := server.NewServer(store, builder, client, versionInfo.Version)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenerateTimeout + 15*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on http://%s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Printf("[Server] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
