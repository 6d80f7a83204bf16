package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gradmend/internal/adapters/filesystem"
	"gradmend/internal/config"
	"gradmend/internal/ports"
)

var (
	templatePath string
	toolchain    string
	store        ports.BuildFileStore
	backups      ports.BackupStore
)

var rootCmd = &cobra.Command{
	Use:   "gradmend-cli",
	Short: "CLI for keeping Gradle build templates patched",
	Long: `gradmend-cli keeps marker-tagged dependency fragments in an exported
Gradle build template present exactly once, in the correct version.

It provides commands to patch the template, inspect fragment status,
manage pre-patch backups, and review past runs. Patching is idempotent:
running it twice changes nothing the second time.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		store = filesystem.NewStore()
		backups = filesystem.NewBackupStore(config.BackupKeep())
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&templatePath, "template", "t", config.TemplatePath(), "path to the build template")
	rootCmd.PersistentFlags().StringVar(&toolchain, "toolchain", config.Toolchain(), "toolchain generation: modern or legacy")
}

// GetStore returns the initialized build file store
func GetStore() ports.BuildFileStore {
	return store
}

// GetBackups returns the initialized backup store
func GetBackups() ports.BackupStore {
	return backups
}
