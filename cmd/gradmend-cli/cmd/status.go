package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gradmend/internal/application"
	"gradmend/internal/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-fragment state without modifying anything",
	Long: `Show whether each required fragment is absent, present and current, or
present but stale for the selected toolchain. Never writes.

Examples:
  gradmend-cli status
  gradmend-cli status --toolchain legacy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		versions, err := application.VersionSetByName(toolchain)
		if err != nil {
			return err
		}

		status := commands.NewStatusCommand(GetStore(), templatePath, versions)
		result, err := status.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
