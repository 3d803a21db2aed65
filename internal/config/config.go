package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Output format names accepted by output.format.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatBoth    = "both"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		FromSymbol     string `yaml:"from_symbol"`
		ToSymbol       string `yaml:"to_symbol"`
		OutputSize     string `yaml:"output_size"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"source"`
	Output struct {
		Format      string `yaml:"format"`
		Dir         string `yaml:"dir"`
		CSVFile     string `yaml:"csv_file"`
		ParquetFile string `yaml:"parquet_file"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		// DailyCron is a six-field cron spec. Empty means run once and exit.
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Notify struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"notify"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.Source.APIKey = v
	}
	if v := os.Getenv("FX_FROM_SYMBOL"); v != "" {
		cfg.Source.FromSymbol = v
	}
	if v := os.Getenv("FX_TO_SYMBOL"); v != "" {
		cfg.Source.ToSymbol = v
	}
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Source.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = "https://www.alphavantage.co"
	}
	if cfg.Source.FromSymbol == "" {
		cfg.Source.FromSymbol = "USD"
	}
	if cfg.Source.ToSymbol == "" {
		cfg.Source.ToSymbol = "JPY"
	}
	if cfg.Source.OutputSize == "" {
		cfg.Source.OutputSize = "full"
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 30
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatCSV
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data"
	}
	pair := cfg.Source.FromSymbol + cfg.Source.ToSymbol
	if cfg.Output.CSVFile == "" {
		cfg.Output.CSVFile = pair + "_daily.csv"
	}
	if cfg.Output.ParquetFile == "" {
		cfg.Output.ParquetFile = pair + "_daily.parquet"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/fx_archive.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Source.APIKey == "" {
		return fmt.Errorf("source.api_key is required")
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if c.Source.FromSymbol == "" || c.Source.ToSymbol == "" {
		return fmt.Errorf("source.from_symbol and source.to_symbol are required")
	}
	if c.Source.OutputSize != "full" && c.Source.OutputSize != "compact" {
		return fmt.Errorf("source.output_size must be full or compact, got %q", c.Source.OutputSize)
	}
	if c.Source.TimeoutSeconds <= 0 {
		return fmt.Errorf("source.timeout_seconds must be positive")
	}
	switch c.Output.Format {
	case FormatCSV, FormatParquet, FormatBoth:
	default:
		return fmt.Errorf("output.format must be csv, parquet or both, got %q", c.Output.Format)
	}
	return nil
}

// CSVPath returns the full path of the CSV destination.
func (c *Config) CSVPath() string {
	return filepath.Join(c.Output.Dir, c.Output.CSVFile)
}

// ParquetPath returns the full path of the parquet destination.
func (c *Config) ParquetPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ParquetFile)
}
