package config

import (
	"fmt"
	"time"

	"job104-crawler/internal/scraper"
)

type Config struct {
	Site          SiteConfig          `yaml:"site"`
	HTTP          HttpConfig          `yaml:"http"`
	Locations     []Location          `yaml:"locations"`
	Selectors     scraper.Selectors   `yaml:"selectors"`
	Output        OutputConfig        `yaml:"output"`
	Rod           RodConfig           `yaml:"rod"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type SiteConfig struct {
	SearchURL   string `yaml:"search_url"`
	LinkScheme  string `yaml:"link_scheme"`
	AreaJoinSep string `yaml:"area_join_sep"`
}

type HttpConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TotalTimeoutMS int    `yaml:"total_timeout_ms"`
	AcceptLanguage string `yaml:"accept_language"`
}

// Location is one canonical region name and the area code the site expects for it.
type Location struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

type OutputConfig struct {
	Dir        string `yaml:"dir"`
	FileSuffix string `yaml:"file_suffix"`
}

type RodConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ChromePath   string `yaml:"chrome_path"`
	PageTimeoutS int    `yaml:"page_timeout_s"`
}

type StorageConfig struct {
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`
}

// Validation
func (c *Config) Validate() error {
	if c.Site.SearchURL == "" {
		return fmt.Errorf("site.search_url is required")
	}
	if c.Site.AreaJoinSep == "" {
		return fmt.Errorf("site.area_join_sep is required")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.TotalTimeoutMS < 0 {
		return fmt.Errorf("http.total_timeout_ms must be >= 0")
	}
	if len(c.Locations) == 0 {
		return fmt.Errorf("locations must not be empty")
	}
	seen := make(map[string]bool, len(c.Locations))
	for i, loc := range c.Locations {
		if loc.Name == "" || loc.Code == "" {
			return fmt.Errorf("locations[%d]: name and code are required", i)
		}
		if seen[loc.Name] {
			return fmt.Errorf("locations[%d]: duplicate name %q", i, loc.Name)
		}
		seen[loc.Name] = true
	}
	if err := validateSelectors(&c.Selectors); err != nil {
		return err
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Storage.Driver != "" && c.Storage.Driver != "sqlite" && c.Storage.Driver != "mssql" {
		return fmt.Errorf("storage.driver must be empty, 'sqlite' or 'mssql'")
	}
	if c.Storage.Driver != "" {
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.driver is set")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability.log_level must be one of debug, info, warn, error")
	}
	if c.Rod.Enabled && c.Rod.PageTimeoutS <= 0 {
		return fmt.Errorf("rod.page_timeout_s must be > 0")
	}
	return nil
}

// Getters
func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}
