// ABOUTME: Root command wiring for the Wingman CLI
// ABOUTME: Registers serve, models, status, and version subcommands
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wingman",
		Short: "Wingman productivity backend",
		Long: `Wingman is a personal-productivity backend: tasks, calendar,
diary, and an AI chat assistant backed by a local Ollama instance.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewModelsCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
