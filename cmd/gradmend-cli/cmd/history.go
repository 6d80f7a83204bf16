package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gradmend/internal/adapters/sqlite"
	"gradmend/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent patch runs",
	Long: `Show recent patch runs for the build template from the history index,
newest first. The index is advisory: the file on disk is always the
source of truth.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := sqlite.NewHistory()
		if err := h.Open(templatePath); err != nil {
			return err
		}
		defer h.Close()

		history := commands.NewHistoryCommand(h, templatePath, historyLimit)
		result, err := history.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, run := range result.Runs {
			status := "ok"
			if !run.Success {
				status = "failed (" + run.Failure + ")"
			}
			changed := " "
			if run.Changed {
				changed = "*"
			}
			fmt.Printf("%s %s %-22s %s\n", changed, run.At.Format("2006-01-02 15:04:05"), status, run.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to show")
}
