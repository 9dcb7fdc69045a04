package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/billmerge/internal/aggregate"
	"github.com/Veraticus/billmerge/internal/cli"
	"github.com/Veraticus/billmerge/internal/common"
	"github.com/Veraticus/billmerge/internal/config"
)

func trendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend [files...]",
		Short: "Show income and expense per day, month or year",
		Long: `Import the given exports and show income and expense per period.
Neutral transactions are not counted.

Examples:
  billmerge trend -g yearly bills/
  # Drill into one month
  billmerge trend --bucket 2024-03 bills/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTrend,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("granularity", "g", string(config.DefaultConfig().Report.Granularity), "bucket size (daily, monthly, yearly)")
	cmd.Flags().String("bucket", "", "list the transactions of one bucket instead of the series")

	_ = viper.BindPFlag(config.KeyGranularity, cmd.Flags().Lookup("granularity"))

	return cmd
}

func runTrend(cmd *cobra.Command, args []string) error {
	filter, err := readFilter(cmd)
	if err != nil {
		return err
	}
	bucket, _ := cmd.Flags().GetString("bucket")

	granularity := appConfig.Report.Granularity
	if bucket != "" {
		start, end, ok := aggregate.BucketRange(bucket, granularity)
		if !ok {
			return common.NewUserError(fmt.Sprintf("Bucket %q is not a %s period", bucket, granularity), common.ErrInvalidConfig)
		}
		filter.StartDate, filter.EndDate = start, end
	}

	session, err := loadLedger(cmd, args)
	if err != nil {
		return err
	}

	if bucket != "" {
		printOut(cmd, cli.FormatTitle(fmt.Sprintf("%s (%s to %s)", bucket, filter.StartDate, filter.EndDate)))
		printOut(cmd, cli.TransactionTable(session.View(filter), appConfig.Report.ListLimit))
		return nil
	}

	points := session.Trend(filter, granularity)
	if len(points) == 0 {
		printOut(cmd, cli.FormatWarning("No transactions match"))
		return nil
	}
	printOut(cmd, cli.TrendTable(points, granularity))
	return nil
}
