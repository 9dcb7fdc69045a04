package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/billmerge/internal/cli"
	"github.com/Veraticus/billmerge/internal/config"
)

func categoriesCmd() *cobra.Command {
	defaults := config.DefaultConfig().Report

	cmd := &cobra.Command{
		Use:   "categories [files...]",
		Short: "Break income or expense down by category",
		Long: `Import the given exports and sum income or expense per type, counterparty,
product or payment method. Groups beyond the limit are folded into "Other".

Examples:
  billmerge categories --dimension counterparty bills/
  billmerge categories --analyze Income --limit 10 bills/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCategories,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("dimension", string(defaults.Dimension), "group by (type, counterparty, product, method)")
	cmd.Flags().String("analyze", string(defaults.Analyze), "direction to break down (Income, Expense)")
	cmd.Flags().IntP("limit", "n", defaults.CategoryLimit, "named groups before the rest is folded into Other")

	_ = viper.BindPFlag(config.KeyDimension, cmd.Flags().Lookup("dimension"))
	_ = viper.BindPFlag(config.KeyAnalyze, cmd.Flags().Lookup("analyze"))
	_ = viper.BindPFlag(config.KeyCategoryLimit, cmd.Flags().Lookup("limit"))

	return cmd
}

func runCategories(cmd *cobra.Command, args []string) error {
	filter, err := readFilter(cmd)
	if err != nil {
		return err
	}

	session, err := loadLedger(cmd, args)
	if err != nil {
		return err
	}

	report := appConfig.Report
	slices := session.Breakdown(filter, report.Dimension, report.Analyze)
	if len(slices) == 0 {
		printOut(cmd, cli.FormatWarning("No transactions match"))
		return nil
	}

	printOut(cmd, cli.BreakdownTable(slices, report.Dimension, report.Analyze))
	return nil
}
