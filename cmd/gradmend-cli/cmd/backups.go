package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gradmend/internal/application/commands"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List retained pre-patch snapshots",
	Long: `List the snapshots taken before destructive edits, newest first.
Backups live outside the project tree and are only ever restored
explicitly (see "restore").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := commands.NewListBackupsCommand(GetBackups(), templatePath)
		result, err := list.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, rec := range result.Records {
			fmt.Printf("%s  %s\n", rec.Taken.Format("2006-01-02 15:04:05"), rec.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}
