package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/billmerge/internal/cli"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [files...]",
		Short: "Show totals and the period the bills cover",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSummary,
	}

	addFilterFlags(cmd)

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	filter, err := readFilter(cmd)
	if err != nil {
		return err
	}

	session, err := loadLedger(cmd, args)
	if err != nil {
		return err
	}

	printOut(cmd, cli.SummaryBox(session.Summary(filter), session.Bounds()))
	return nil
}
