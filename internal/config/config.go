// Package config loads the advisor's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	ListenAddr      string                `yaml:"listen_addr"`
	LogLevel        string                `yaml:"log_level"`
	LLM             LLMConfig             `yaml:"llm"`
	Recommendations RecommendationsConfig `yaml:"recommendations"`
	Posture         PostureConfig         `yaml:"posture"`
	Preferences     PreferencesConfig     `yaml:"preferences"`
}

// LLMConfig selects the model backend. APIKey is normally "${GEMINI_API_KEY}".
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // gemini or none
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"` // recommendation generation
	MaxTokens   int     `yaml:"max_tokens"`

	ChatTemperature float64 `yaml:"chat_temperature"`
}

// RecommendationsConfig controls the initial load.
type RecommendationsConfig struct {
	Source    string        `yaml:"source"` // seed or generate
	LoadDelay time.Duration `yaml:"load_delay"`
	Context   string        `yaml:"context"`
}

// PostureConfig enables live finding collection per cloud.
type PostureConfig struct {
	AWS   AWSConfig   `yaml:"aws"`
	Azure AzureConfig `yaml:"azure"`
	GCP   GCPConfig   `yaml:"gcp"`
}

type AWSConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	AccountID string `yaml:"account_id"`
}

type AzureConfig struct {
	Enabled        bool   `yaml:"enabled"`
	SubscriptionID string `yaml:"subscription_id"`
}

type GCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	OrgID   string `yaml:"org_id"`
}

// Enabled reports whether any cloud is configured.
func (p PostureConfig) Enabled() bool {
	return p.AWS.Enabled || p.Azure.Enabled || p.GCP.Enabled
}

// PreferencesConfig locates the preference database.
type PreferencesConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		LLM: LLMConfig{
			Provider:    "gemini",
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       "gemini-2.5-flash",
			Temperature: 0.2,
			MaxTokens:   4096,

			ChatTemperature: 0.7,
		},
		Recommendations: RecommendationsConfig{
			Source:    "seed",
			LoadDelay: 500 * time.Millisecond,
		},
		Preferences: PreferencesConfig{
			DBPath: "advisor.db",
		},
	}
}

// LoadEnv reads a .env file into the process environment if one exists.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// envRef matches braced ${VAR} references. Bare $ text is left alone so
// free-text values such as "$5k budget" survive.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envRef.FindStringSubmatch(m)[1])
	})
}

// Load reads path, expands ${VAR} references and fills unset fields from
// Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	// #nosec G304 -- path is operator-provided config path.
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := expandEnv(string(raw))
	expanded = strings.ReplaceAll(expanded, "\r\n", "\n")

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}

	switch c.LLM.Provider {
	case "gemini", "none":
	default:
		return fmt.Errorf("llm.provider must be gemini or none, got %q", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if c.LLM.ChatTemperature < 0 || c.LLM.ChatTemperature > 2 {
		return fmt.Errorf("llm.chat_temperature must be between 0 and 2")
	}

	switch c.Recommendations.Source {
	case "seed", "generate":
	default:
		return fmt.Errorf("recommendations.source must be seed or generate, got %q", c.Recommendations.Source)
	}
	if c.Recommendations.LoadDelay < 0 {
		return fmt.Errorf("recommendations.load_delay must not be negative")
	}

	if c.Posture.Azure.Enabled && c.Posture.Azure.SubscriptionID == "" {
		return fmt.Errorf("posture.azure.subscription_id is required when posture.azure.enabled=true")
	}
	if c.Posture.GCP.Enabled && c.Posture.GCP.OrgID == "" {
		return fmt.Errorf("posture.gcp.org_id is required when posture.gcp.enabled=true")
	}

	if c.Preferences.DBPath == "" {
		return fmt.Errorf("preferences.db_path is required")
	}

	return nil
}
