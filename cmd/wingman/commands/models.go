// ABOUTME: Models command: list, pull, and delete Ollama models
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wingmanhq/wingman-backend/internal/config"
	"github.com/wingmanhq/wingman-backend/internal/llm"
)

// NewModelsCmd creates the models command group
func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage Ollama models",
	}

	cmd.AddCommand(newModelsListCmd())
	cmd.AddCommand(newModelsPullCmd())
	cmd.AddCommand(newModelsDeleteCmd())

	return cmd
}

func newOllamaClient() (*llm.Client, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return llm.NewClient(&llm.ClientConfig{
		BaseURL:     cfg.OllamaURL,
		Model:       cfg.Model,
		PullTimeout: cfg.PullTimeout,
	}), nil
}

func newModelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported models and what Ollama has installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOllamaClient()
			if err != nil {
				return err
			}

			status := client.Status(cmd.Context())
			installed := make(map[string]bool, len(status.Models))
			for _, name := range status.Models {
				installed[name] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recommended: %s\n\n", llm.RecommendedModel())
			for _, m := range llm.Catalog() {
				mark := " "
				if installed[m.Name] {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-18s %6s  %dGB RAM  %s\n",
					mark, m.Name, m.Size, m.RAMRequired, m.Description)
			}
			if !status.Available {
				fmt.Fprintf(out, "\nOllama unreachable: %s\n", status.Error)
			}
			return nil
		},
	}
}

func newModelsPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <model>",
		Short: "Download a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOllamaClient()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulling %s (this can take a while)...\n", args[0])
			if err := client.PullModel(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("pulling model: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s\n", args[0])
			return nil
		},
	}
}

func newModelsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <model>",
		Short: "Remove a pulled model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newOllamaClient()
			if err != nil {
				return err
			}
			if err := client.DeleteModel(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deleting model: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
