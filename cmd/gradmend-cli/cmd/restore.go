package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gradmend/internal/application/commands"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-path>",
	Short: "Restore the build template from a backup",
	Long: `Restore the build template from one of its retained snapshots.

Restores are always explicit; the patcher never reads a backup back on
its own.

Example:
  gradmend-cli restore ~/.local/share/gradmend/backups/ab12/mainTemplate.gradle.20260821-101530.000000000.bak`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		restore := commands.NewRestoreCommand(GetBackups(), templatePath, args[0])
		result, err := restore.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
