package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/billmerge/internal/cli"
	"github.com/Veraticus/billmerge/internal/common"
	"github.com/Veraticus/billmerge/internal/config"
	"github.com/Veraticus/billmerge/internal/engine"
	"github.com/Veraticus/billmerge/internal/ingest"
	"github.com/Veraticus/billmerge/internal/ledger"
	"github.com/Veraticus/billmerge/internal/model"
)

// importer ingests the files named on the command line into a fresh session.
type importer struct {
	session  *engine.Session
	bar      *cli.FileProgress
	progress io.Writer
	files    []ingest.File
}

func newImporter(cmd *cobra.Command, args []string) (*importer, error) {
	paths, err := config.ResolveFiles(args)
	if err != nil {
		if errors.Is(err, common.ErrNoFiles) {
			return nil, common.NewUserError("Nothing to import", err)
		}
		return nil, err
	}

	imp := &importer{progress: cmd.ErrOrStderr()}
	for _, p := range paths {
		imp.files = append(imp.files, ingest.FromPath(p))
	}

	pipeline := ingest.NewPipeline(ingest.Options{
		DefaultEncoding: appConfig.Import.DefaultEncoding,
		AlipayEncoding:  appConfig.Import.AlipayEncoding,
		OnFile: func(r ingest.FileReport) {
			if imp.bar != nil {
				imp.bar.Step(r.Name)
			}
		},
	})
	imp.session = engine.NewWithConfig(pipeline, engine.Config{SliceLimit: appConfig.Report.CategoryLimit})

	return imp, nil
}

func (imp *importer) run(ctx context.Context) engine.IngestReport {
	imp.bar = cli.NewFileProgress(imp.progress, len(imp.files))
	report := imp.session.Ingest(ctx, imp.files)
	imp.bar.Finish()
	imp.bar = nil

	for _, f := range report.Files {
		if f.Err != nil {
			common.LogError(f.Err, "Skipped file", common.Fields{"file": f.Name})
		}
	}
	return report
}

// loadLedger ingests args once and returns the resulting session.
func loadLedger(cmd *cobra.Command, args []string) (*engine.Session, error) {
	imp, err := newImporter(cmd, args)
	if err != nil {
		return nil, err
	}

	report := imp.run(cmd.Context())
	common.LogInfo("Ledger loaded", common.Fields{
		"files":        len(report.Files),
		"transactions": report.Stats.Total,
	})
	return imp.session, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "only transactions whose product, counterparty, type or payment method contains this text")
	cmd.Flags().StringP("direction", "d", "All", "only transactions of this direction (All, Income, Expense, Neutral)")
	cmd.Flags().String("start", "", "earliest date to include (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "latest date to include (YYYY-MM-DD)")
}

func readFilter(cmd *cobra.Command) (ledger.Filter, error) {
	search, _ := cmd.Flags().GetString("search")
	direction, _ := cmd.Flags().GetString("direction")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	dir, err := parseDirectionFilter(direction)
	if err != nil {
		return ledger.Filter{}, err
	}
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return ledger.Filter{}, common.NewUserError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", d), err)
		}
	}

	return ledger.Filter{
		Search:    search,
		Direction: dir,
		StartDate: start,
		EndDate:   end,
	}, nil
}

func parseDirectionFilter(s string) (model.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ledger.DirectionAll, nil
	case "income":
		return model.DirectionIncome, nil
	case "expense":
		return model.DirectionExpense, nil
	case "neutral":
		return model.DirectionNeutral, nil
	default:
		return "", common.NewUserError(fmt.Sprintf("Invalid direction %q", s), common.ErrInvalidConfig)
	}
}

func printOut(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), text)
}
