package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/billmerge/internal/cli"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import bill exports and report what was read",
		Long: `Import WeChat Pay and Alipay bill exports (.csv, .xlsx) and report, per file,
which vendor was detected, how many records were read and why rows were skipped.

Examples:
  # Import single file
  billmerge import ~/Downloads/微信支付账单.csv

  # Import every export in a directory
  billmerge import ~/Downloads/bills

  # Import the same batch three times; later rounds add nothing
  billmerge import --repeat 3 ~/Downloads/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().IntP("repeat", "r", 1, "import the batch this many times")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}

	imp, err := newImporter(cmd, args)
	if err != nil {
		return err
	}

	slog.Info("Importing bills", "file_count", len(imp.files), "rounds", repeat)

	for round := 1; round <= repeat; round++ {
		if err := cmd.Context().Err(); err != nil {
			slog.Warn("Stopping before next round", "round", round, "error", err)
			break
		}

		report := imp.run(cmd.Context())
		if repeat > 1 {
			printOut(cmd, cli.FormatTitle(fmt.Sprintf("Round %d of %d", round, repeat)))
		}
		printOut(cmd, cli.ImportReport(report))
	}

	bounds := imp.session.Bounds()
	if bounds.Earliest != "" {
		printOut(cmd, cli.FormatInfo(fmt.Sprintf("Bills cover %s to %s", bounds.Earliest, bounds.Latest)))
	}
	return nil
}
