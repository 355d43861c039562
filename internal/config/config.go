package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "REGRADAR_CONFIG"
	dbFileEnv       = "REGULATIONS_DB_FILE"
	federalKeyEnv   = "REGULATIONS_GOV_API_KEY"
	stateKeyEnv     = "NYS_LEGISLATURE_API_KEY"
	localTokenEnv   = "NYC_OPEN_DATA_APP_TOKEN"
	anthropicKeyEnv = "ANTHROPIC_API_KEY"

	defaultDBFile   = "regulations.db"
	defaultDaysBack = 7
	defaultPageSize = 10
	defaultWebAddr  = ":8080"
	defaultWebPage  = 25
)

// Config holds high-level settings required across the application.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Sources   SourcesConfig   `yaml:"sources"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Web       WebConfig       `yaml:"web"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig points at the local SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig bounds one aggregation run.
type FetchConfig struct {
	DaysBack int      `yaml:"daysBack"`
	PageSize int      `yaml:"pageSize"`
	Keywords []string `yaml:"keywords"`
}

// SourcesConfig groups per-source endpoints and credentials.
type SourcesConfig struct {
	Federal SourceConfig `yaml:"federal"`
	State   SourceConfig `yaml:"state"`
	Local   SourceConfig `yaml:"local"`
}

// SourceConfig describes one upstream API. An empty APIKey disables the
// source for the run.
type SourceConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// AnthropicConfig defines how to contact the brief-generation API.
type AnthropicConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// WebConfig configures the browse server.
type WebConfig struct {
	Addr     string `yaml:"addr"`
	PageSize int    `yaml:"pageSize"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// AnyCredential reports whether at least one source can run.
func (c Config) AnyCredential() bool {
	return c.Sources.Federal.APIKey != "" ||
		c.Sources.State.APIKey != "" ||
		c.Sources.Local.APIKey != ""
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dbFileEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(federalKeyEnv); v != "" {
		c.Sources.Federal.APIKey = v
	}

	if v := os.Getenv(stateKeyEnv); v != "" {
		c.Sources.State.APIKey = v
	}

	if v := os.Getenv(localTokenEnv); v != "" {
		c.Sources.Local.APIKey = v
	}

	if v := os.Getenv(anthropicKeyEnv); v != "" {
		c.Anthropic.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Fetch.DaysBack > 0 {
		base.Fetch.DaysBack = override.Fetch.DaysBack
	}
	if override.Fetch.PageSize > 0 {
		base.Fetch.PageSize = override.Fetch.PageSize
	}
	if len(override.Fetch.Keywords) > 0 {
		base.Fetch.Keywords = override.Fetch.Keywords
	}

	base.Sources.Federal = mergeSource(base.Sources.Federal, override.Sources.Federal)
	base.Sources.State = mergeSource(base.Sources.State, override.Sources.State)
	base.Sources.Local = mergeSource(base.Sources.Local, override.Sources.Local)

	if override.Anthropic.Endpoint != "" {
		base.Anthropic.Endpoint = override.Anthropic.Endpoint
	}
	if override.Anthropic.Model != "" {
		base.Anthropic.Model = override.Anthropic.Model
	}
	if override.Anthropic.APIKey != "" {
		base.Anthropic.APIKey = override.Anthropic.APIKey
	}

	if override.Web.Addr != "" {
		base.Web.Addr = override.Web.Addr
	}
	if override.Web.PageSize > 0 {
		base.Web.PageSize = override.Web.PageSize
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func mergeSource(base, override SourceConfig) SourceConfig {
	if override.BaseURL != "" {
		base.BaseURL = override.BaseURL
	}
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: defaultDBFile},
		Fetch: FetchConfig{
			DaysBack: defaultDaysBack,
			PageSize: defaultPageSize,
			Keywords: []string{
				"food", "beverage", "dairy", "meat", "poultry", "seafood",
				"alcohol", "restaurant", "nutrition", "drink",
			},
		},
		Sources: SourcesConfig{
			Federal: SourceConfig{BaseURL: "https://api.regulations.gov/v4/documents"},
			State:   SourceConfig{BaseURL: "https://legislation.nysenate.gov/api/3/bills"},
			Local:   SourceConfig{BaseURL: "https://data.cityofnewyork.us/resource/regulatory-notices.json"},
		},
		Anthropic: AnthropicConfig{
			Endpoint: "https://api.anthropic.com/v1/messages",
			Model:    "claude-3-5-haiku-latest",
		},
		Web:     WebConfig{Addr: defaultWebAddr, PageSize: defaultWebPage},
		Logging: LoggingConfig{Level: "info"},
	}
}
