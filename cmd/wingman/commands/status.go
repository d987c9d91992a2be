// ABOUTME: Status command: reports database and Ollama health
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wingmanhq/wingman-backend/internal/config"
	"github.com/wingmanhq/wingman-backend/internal/llm"
	"github.com/wingmanhq/wingman-backend/internal/storage"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend and Ollama health",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			out := cmd.OutOrStdout()

			store, err := storage.NewStorageWithPath(cfg.DBPath)
			if err != nil {
				fmt.Fprintf(out, "Database: error (%v)\n", err)
			} else {
				defer store.Close()
				if err := store.Ping(); err != nil {
					fmt.Fprintf(out, "Database: error (%v)\n", err)
				} else {
					fmt.Fprintln(out, "Database: ok")
				}
			}

			client := llm.NewClient(&llm.ClientConfig{BaseURL: cfg.OllamaURL})
			status := client.Status(cmd.Context())
			if status.Available {
				fmt.Fprintf(out, "Ollama:   %s (%d models installed)\n", status.Status, len(status.Models))
				fmt.Fprintf(out, "Model:    recommended %s\n", status.RecommendedModel)
			} else {
				fmt.Fprintf(out, "Ollama:   %s (%s)\n", status.Status, status.Error)
			}
			return nil
		},
	}
}
