package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/billmerge/internal/aggregate"
	"github.com/Veraticus/billmerge/internal/common"
	"github.com/Veraticus/billmerge/internal/ingest"
	"github.com/Veraticus/billmerge/internal/model"
)

// Config is the complete application configuration.
type Config struct {
	Logging LoggingConfig
	Import  ImportConfig
	Report  ReportConfig
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // console, json
}

// ImportConfig controls how delimited exports are decoded.
type ImportConfig struct {
	DefaultEncoding ingest.Encoding
	AlipayEncoding  ingest.Encoding
}

// ReportConfig holds the defaults of the report commands.
type ReportConfig struct {
	Granularity   aggregate.Granularity
	Dimension     aggregate.Dimension
	Analyze       model.Direction
	CategoryLimit int
	ListLimit     int
}

// Viper keys.
const (
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyDefaultEncoding = "import.default_encoding"
	KeyAlipayEncoding  = "import.alipay_encoding"
	KeyGranularity     = "report.granularity"
	KeyDimension       = "report.dimension"
	KeyAnalyze         = "report.analyze"
	KeyCategoryLimit   = "report.category_limit"
	KeyListLimit       = "report.list_limit"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Import: ImportConfig{
			DefaultEncoding: ingest.EncodingUTF8,
			AlipayEncoding:  ingest.EncodingGBK,
		},
		Report: ReportConfig{
			Granularity:   aggregate.Monthly,
			Dimension:     aggregate.ByType,
			Analyze:       model.DirectionExpense,
			CategoryLimit: aggregate.DefaultSliceLimit,
			ListLimit:     50,
		},
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyLogLevel, d.Logging.Level)
	v.SetDefault(KeyLogFormat, d.Logging.Format)
	v.SetDefault(KeyDefaultEncoding, string(d.Import.DefaultEncoding))
	v.SetDefault(KeyAlipayEncoding, string(d.Import.AlipayEncoding))
	v.SetDefault(KeyGranularity, string(d.Report.Granularity))
	v.SetDefault(KeyDimension, string(d.Report.Dimension))
	v.SetDefault(KeyAnalyze, string(d.Report.Analyze))
	v.SetDefault(KeyCategoryLimit, d.Report.CategoryLimit)
	v.SetDefault(KeyListLimit, d.Report.ListLimit)
}

// Load reads the configuration from v, or from the global viper instance
// when v is nil, and validates it.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	var errs []string
	config := Config{
		Logging: LoggingConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		},
	}

	if _, err := common.ParseLevel(config.Logging.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format: %s", config.Logging.Format))
	}

	var err error
	if config.Import.DefaultEncoding, err = ingest.ParseEncoding(v.GetString(KeyDefaultEncoding)); err != nil {
		errs = append(errs, err.Error())
	}
	if config.Import.AlipayEncoding, err = ingest.ParseEncoding(v.GetString(KeyAlipayEncoding)); err != nil {
		errs = append(errs, err.Error())
	}

	if config.Report.Granularity, err = aggregate.ParseGranularity(v.GetString(KeyGranularity)); err != nil {
		errs = append(errs, err.Error())
	}
	if config.Report.Dimension, err = aggregate.ParseDimension(v.GetString(KeyDimension)); err != nil {
		errs = append(errs, err.Error())
	}
	if config.Report.Analyze, err = ParseAnalyze(v.GetString(KeyAnalyze)); err != nil {
		errs = append(errs, err.Error())
	}

	config.Report.CategoryLimit = v.GetInt(KeyCategoryLimit)
	if config.Report.CategoryLimit <= 0 {
		errs = append(errs, "category limit must be positive")
	}
	config.Report.ListLimit = v.GetInt(KeyListLimit)
	if config.Report.ListLimit <= 0 {
		errs = append(errs, "list limit must be positive")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return &config, nil
}

// ParseAnalyze accepts the direction a breakdown can be computed for.
// Only Income and Expense qualify.
func ParseAnalyze(s string) (model.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "收入":
		return model.DirectionIncome, nil
	case "expense", "支出":
		return model.DirectionExpense, nil
	default:
		return "", fmt.Errorf("invalid analysis direction %q (want Income or Expense)", s)
	}
}
