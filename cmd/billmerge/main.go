package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/billmerge/internal/cli"
	"github.com/Veraticus/billmerge/internal/common"
	"github.com/Veraticus/billmerge/internal/config"
)

var (
	cfgFile   string
	version   = "dev"
	appConfig = config.DefaultConfig()
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "billmerge",
		Short: "🧾 Merge WeChat Pay and Alipay bill exports into one ledger",
		Long: `billmerge reads the bill exports of WeChat Pay and Alipay, in CSV or
Excel form, normalizes them into one ledger and removes transactions that were
imported more than once. The ledger lives only as long as the command runs.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/billmerge/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", appConfig.Logging.Level, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", appConfig.Logging.Format, "log format (console, json)")
	rootCmd.PersistentFlags().String("encoding", string(appConfig.Import.DefaultEncoding), "encoding tried first for CSV exports (utf-8, gbk, gb18030)")
	rootCmd.PersistentFlags().String("alipay-encoding", string(appConfig.Import.AlipayEncoding), "encoding tried first for CSV exports named like Alipay bills")

	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyDefaultEncoding, rootCmd.PersistentFlags().Lookup("encoding"))
	_ = viper.BindPFlag(config.KeyAlipayEncoding, rootCmd.PersistentFlags().Lookup("alipay-encoding"))

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(trendCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = interrupts.HandleInterrupts(ctx)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/billmerge", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BILLMERGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(nil)
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}
	appConfig = *cfg

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(appConfig.Logging.Level)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, appConfig.Logging.Format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "billmerge %s\n", version)
		},
	}
}
