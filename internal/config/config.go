// internal/config/config.go

// Package config loads and validates RealtyScrapexter configuration
// from YAML. Every tunable of the extraction engine — collection
// limits, similarity thresholds, the price sanity band, selector and
// denylist extensions — lives here and is loaded once; nothing is
// mutated at runtime.
package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valpere/RealtyScrapexter/internal/collect"
	"github.com/valpere/RealtyScrapexter/internal/dedup"
	"github.com/valpere/RealtyScrapexter/internal/extract"
	"github.com/valpere/RealtyScrapexter/internal/locate"
	"github.com/valpere/RealtyScrapexter/internal/validate"
)

// Config is the root configuration for an extraction job
type Config struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Input       InputConfig   `yaml:"input"`
	Engine      EngineConfig  `yaml:"engine,omitempty"`
	Output      OutputConfig  `yaml:"output"`
	Metrics     MetricsConfig `yaml:"metrics,omitempty"`
}

// InputConfig names the snapshot files to process
type InputConfig struct {
	// Files lists saved HTML snapshot files
	Files []string `yaml:"files,omitempty"`

	// Directory is scanned for *.html snapshot files
	Directory string `yaml:"directory,omitempty"`

	// BaseURL resolves relative links inside the snapshots
	BaseURL string `yaml:"base_url,omitempty"`
}

// EngineConfig carries the extraction-engine tunables
type EngineConfig struct {
	MaxListings        int `yaml:"max_listings,omitempty"`
	MaxReviews         int `yaml:"max_reviews,omitempty"`
	MaxRecommendations int `yaml:"max_recommendations,omitempty"`

	PriceMin float64 `yaml:"price_min,omitempty"`
	PriceMax float64 `yaml:"price_max,omitempty"`

	Thresholds ThresholdConfig  `yaml:"thresholds,omitempty"`
	Selectors  SelectorConfig   `yaml:"selectors,omitempty"`
	Validation ValidationConfig `yaml:"validation,omitempty"`
}

// ThresholdConfig exposes the deduplication cutoffs. The defaults are
// empirically tuned; treat them as calibration candidates, not truths.
type ThresholdConfig struct {
	TextSimilarity   float64 `yaml:"text_similarity,omitempty"`
	AuthorSimilarity float64 `yaml:"author_similarity,omitempty"`
	WordOverlap      float64 `yaml:"word_overlap,omitempty"`
}

// SelectorConfig extends the built-in candidate selector lists
type SelectorConfig struct {
	Listings        []string `yaml:"listings,omitempty"`
	Reviews         []string `yaml:"reviews,omitempty"`
	Recommendations []string `yaml:"recommendations,omitempty"`
}

// ValidationConfig extends the content validator's pattern sets
type ValidationConfig struct {
	ExtraNoisePatterns []string `yaml:"extra_noise_patterns,omitempty"`
	ExtraPromptPhrases []string `yaml:"extra_prompt_phrases,omitempty"`
	MinReviewLength    int      `yaml:"min_review_length,omitempty"`
	MaxReviewLength    int      `yaml:"max_review_length,omitempty"`
}

// OutputConfig selects the export destination
type OutputConfig struct {
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`

	// Database settings for the sql/mongo formats
	ConnectionString string `yaml:"connection_string,omitempty"`
	Database         string `yaml:"database,omitempty"`
	Table            string `yaml:"table,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	ListenAddress string `yaml:"listen_address,omitempty"`
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %v", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expanded := expandEnvironmentVariables(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %v", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from an io.Reader
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %v", err)
	}

	return LoadFromBytes(data)
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if len(c.Input.Files) == 0 && c.Input.Directory == "" {
		return fmt.Errorf("input requires files or a directory")
	}

	validFormats := map[string]bool{
		"json": true, "yaml": true, "csv": true, "tsv": true,
		"excel": true, "sqlite": true, "postgresql": true,
		"mysql": true, "mongodb": true, "stdout": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}

	switch c.Output.Format {
	case "stdout":
	case "postgresql", "mysql", "mongodb":
		if c.Output.ConnectionString == "" {
			return fmt.Errorf("output format %s requires connection_string", c.Output.Format)
		}
		if c.Output.Format == "mongodb" && c.Output.Database == "" {
			return fmt.Errorf("output format mongodb requires database")
		}
	default:
		if c.Output.File == "" {
			return fmt.Errorf("output format %s requires a file", c.Output.Format)
		}
	}

	for _, threshold := range []struct {
		name  string
		value float64
	}{
		{"text_similarity", c.Engine.Thresholds.TextSimilarity},
		{"author_similarity", c.Engine.Thresholds.AuthorSimilarity},
		{"word_overlap", c.Engine.Thresholds.WordOverlap},
	} {
		if threshold.value < 0 || threshold.value > 1 {
			return fmt.Errorf("threshold %s must be within [0,1]", threshold.name)
		}
	}

	if c.Engine.PriceMin < 0 || (c.Engine.PriceMax > 0 && c.Engine.PriceMax <= c.Engine.PriceMin) {
		return fmt.Errorf("price band is invalid: min=%v max=%v", c.Engine.PriceMin, c.Engine.PriceMax)
	}

	for _, pattern := range c.Engine.Validation.ExtraNoisePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid noise pattern %q: %v", pattern, err)
		}
	}

	return nil
}

// CollectorConfig maps the loaded configuration onto the collector's
// collaborator configs
func (c *Config) CollectorConfig() collect.Config {
	return collect.Config{
		Locator: locate.Config{
			ExtraListingSelectors:        c.Engine.Selectors.Listings,
			ExtraReviewSelectors:         c.Engine.Selectors.Reviews,
			ExtraRecommendationSelectors: c.Engine.Selectors.Recommendations,
		},
		Validator: validate.Config{
			ExtraNoisePatterns: c.Engine.Validation.ExtraNoisePatterns,
			ExtraPromptPhrases: c.Engine.Validation.ExtraPromptPhrases,
			MinReviewLength:    c.Engine.Validation.MinReviewLength,
			MaxReviewLength:    c.Engine.Validation.MaxReviewLength,
		},
		Extractor: extract.Config{
			PriceMin: c.Engine.PriceMin,
			PriceMax: c.Engine.PriceMax,
		},
		Dedup: dedup.Config{
			TextSimilarityThreshold:   c.Engine.Thresholds.TextSimilarity,
			AuthorSimilarityThreshold: c.Engine.Thresholds.AuthorSimilarity,
			WordOverlapThreshold:      c.Engine.Thresholds.WordOverlap,
		},
		MaxListings:        c.Engine.MaxListings,
		MaxReviews:         c.Engine.MaxReviews,
		MaxRecommendations: c.Engine.MaxRecommendations,
	}
}

// applyDefaults fills unset fields with working defaults
func applyDefaults(cfg *Config) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	if cfg.Output.Table == "" {
		cfg.Output.Table = "listings"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = ":9090"
	}
}

// envVarRegex matches ${VAR} references in the raw YAML
var envVarRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvironmentVariables substitutes ${VAR} references with
// environment values; unset variables expand to the empty string
func expandEnvironmentVariables(data string) string {
	return envVarRegex.ReplaceAllStringFunc(data, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// GenerateTemplate returns a starter configuration for the given
// template kind
func GenerateTemplate(kind string) *Config {
	cfg := &Config{
		Name:        "realty-extraction",
		Description: "Extract listings, reviews, and agent profiles from saved page snapshots",
		Input: InputConfig{
			Directory: "./snapshots",
			BaseURL:   "https://www.example.com",
		},
		Output: OutputConfig{
			Format: "json",
			File:   "results.json",
		},
	}

	switch kind {
	case "database":
		cfg.Output = OutputConfig{
			Format:           "postgresql",
			ConnectionString: "${DATABASE_URL}",
			Table:            "listings",
		}
	case "tuned":
		cfg.Engine = EngineConfig{
			MaxListings: 20,
			PriceMin:    extract.DefaultPriceMin,
			PriceMax:    extract.DefaultPriceMax,
			Thresholds: ThresholdConfig{
				TextSimilarity:   dedup.DefaultTextSimilarityThreshold,
				AuthorSimilarity: dedup.DefaultAuthorSimilarityThreshold,
				WordOverlap:      dedup.DefaultWordOverlapThreshold,
			},
		}
	}

	return cfg
}

// SaveToFile writes the configuration to a YAML file
func SaveToFile(cfg *Config, filename string) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %v", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %v", err)
	}

	return nil
}
