package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gradmend/internal/adapters/sqlite"
	"gradmend/internal/application"
	"gradmend/internal/application/commands"
	"gradmend/internal/ports"
)

var patchNoHistory bool

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Patch the build template",
	Long: `Patch the build template so it contains exactly one current copy of
every required fragment.

Stale fragments are removed (after a snapshot lands in the backup
directory), missing ones are injected at their anchors, and the result
is committed atomically only when the content actually changed.

Examples:
  gradmend-cli patch
  gradmend-cli patch --toolchain legacy
  gradmend-cli patch -t ./android/mainTemplate.gradle`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		versions, err := application.VersionSetByName(toolchain)
		if err != nil {
			return err
		}

		var history ports.PatchHistory
		if !patchNoHistory {
			h := sqlite.NewHistory()
			if err := h.Open(templatePath); err == nil {
				defer h.Close()
				history = h
			}
		}

		patch := commands.NewPatchCommand(GetStore(), GetBackups(), history, templatePath, versions)
		result, err := patch.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		if result.Backup != nil {
			fmt.Printf("Backup: %s\n", result.Backup.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)
	patchCmd.Flags().BoolVar(&patchNoHistory, "no-history", false, "do not record the run in the history index")
}
