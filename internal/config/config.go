// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Paths
	Input     string `json:"input,omitempty"`      // Path to the seed CSV of portfolio URLs
	OutputCSV string `json:"output_csv,omitempty"` // Path for the company records CSV
	KeywordDB string `json:"keyword_db,omitempty"` // Path for the keyword discovery store

	// Investor context
	InvestorName string `json:"investor_name,omitempty"` // Overrides the name derived from the seed URL

	// Credentials
	APIKey           string `json:"api_key,omitempty"`            // Gemini API key
	SearchAPIKey     string `json:"search_api_key,omitempty"`     // Google Custom Search API key
	SearchEngineID   string `json:"search_engine_id,omitempty"`   // Custom Search engine ID for website lookup
	DealAPIKey       string `json:"deal_api_key,omitempty"`       // Custom Search API key for deal articles
	DealEngineID     string `json:"deal_engine_id,omitempty"`     // Custom Search engine ID for deal articles
	KnowledgeAPIKey  string `json:"knowledge_api_key,omitempty"`  // Knowledge Graph API key
	DatabaseURL      string `json:"database_url,omitempty"`       // PostgreSQL connection URL
	GeminiModelTier  string `json:"gemini_model_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`
	RequestTimeoutMS int    `json:"request_timeout_ms,omitempty" validate:"omitempty,min=0"`

	// Expansion limits
	MaxExpandPages int `json:"max_expand_pages,omitempty" validate:"omitempty,min=0"`
	MaxExpandDepth int `json:"max_expand_depth,omitempty" validate:"omitempty,min=0"`

	// Behavior
	UseBrowser      bool `json:"use_browser,omitempty"`      // Use headless browser for SPA sites
	EnableExpansion bool `json:"enable_expansion,omitempty"` // Follow keyword-scoped same-domain links
	SkipCache       bool `json:"skip_cache,omitempty"`       // Bypass the crawled-page cache
	Verbose         bool `json:"verbose,omitempty"`          // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills credential fields from environment variables. Values already
// set (from the config file or flags) win over the environment.
func (c *Config) FromEnv() {
	env := func(target *string, keys ...string) {
		if *target != "" {
			return
		}
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*target = v
				return
			}
		}
	}

	env(&c.APIKey, "GEMINI_API_KEY")
	env(&c.SearchAPIKey, "GOOGLE_API_KEY")
	env(&c.SearchEngineID, "GOOGLE_CSE_ID")
	env(&c.DealAPIKey, "GOOGLE_DEAL_API_KEY", "GOOGLE_API_KEY")
	env(&c.DealEngineID, "GOOGLE_DEAL_CX", "GOOGLE_CSE_ID")
	env(&c.KnowledgeAPIKey, "GOOGLE_KG_API_KEY", "GOOGLE_API_KEY")
	env(&c.DatabaseURL, "DATABASE_URL")
}

// Validate checks that the configuration has valid values.
// Required fields are enforced by the CLI after merging flags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// RequestTimeout returns the configured HTTP timeout, or zero when unset.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.OutputCSV == "" {
		result.OutputCSV = defaults.OutputCSV
	}
	if result.KeywordDB == "" {
		result.KeywordDB = defaults.KeywordDB
	}
	if result.InvestorName == "" {
		result.InvestorName = defaults.InvestorName
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.DealAPIKey == "" {
		result.DealAPIKey = defaults.DealAPIKey
	}
	if result.DealEngineID == "" {
		result.DealEngineID = defaults.DealEngineID
	}
	if result.KnowledgeAPIKey == "" {
		result.KnowledgeAPIKey = defaults.KnowledgeAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiModelTier == "" {
		result.GeminiModelTier = defaults.GeminiModelTier
	}

	// Int fields: use default if zero
	if result.RequestTimeoutMS == 0 {
		result.RequestTimeoutMS = defaults.RequestTimeoutMS
	}
	if result.MaxExpandPages == 0 {
		result.MaxExpandPages = defaults.MaxExpandPages
	}
	if result.MaxExpandDepth == 0 {
		result.MaxExpandDepth = defaults.MaxExpandDepth
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
