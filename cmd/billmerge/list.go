package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/billmerge/internal/cli"
	"github.com/Veraticus/billmerge/internal/config"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [files...]",
		Short: "List transactions, newest first",
		Long: `Import the given exports and list the merged transactions, newest first.

Examples:
  # Everything spent at a coffee shop in January
  billmerge list -s 咖啡 -d Expense --start 2024-01-01 --end 2024-01-31 bills/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().IntP("limit", "n", config.DefaultConfig().Report.ListLimit, "maximum number of rows to print")

	_ = viper.BindPFlag(config.KeyListLimit, cmd.Flags().Lookup("limit"))

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := readFilter(cmd)
	if err != nil {
		return err
	}

	session, err := loadLedger(cmd, args)
	if err != nil {
		return err
	}

	view := session.View(filter)
	if len(view) == 0 {
		printOut(cmd, cli.FormatWarning("No transactions match"))
		return nil
	}

	printOut(cmd, cli.TransactionTable(view, appConfig.Report.ListLimit))
	return nil
}
