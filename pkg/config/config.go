package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Vendor describes one external model endpoint. Base URLs are
// OpenAI-compatible chat-completion roots (".../v1").
type Vendor struct {
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	CostPerCall float64 `mapstructure:"cost_per_call"`
}

// Roles maps each pipeline concern to the vendor that serves it.
type Roles struct {
	Recipe  string `mapstructure:"recipe"`
	Content string `mapstructure:"content"`
	Audit   string `mapstructure:"audit"`
	Images  string `mapstructure:"images"`
	Publish string `mapstructure:"publish"`
}

// Config stores all configuration of the application.
type Config struct {
	LogLevel       string            `mapstructure:"log_level"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout"`
	RetryAttempts  int               `mapstructure:"retry_attempts"`
	RetryDelay     time.Duration     `mapstructure:"retry_delay"`
	Vendors        map[string]Vendor `mapstructure:"vendors"`
	Roles          Roles             `mapstructure:"roles"`
	RecipeToolURL  string            `mapstructure:"recipe_tool_url"`
	PublishURL     string            `mapstructure:"publish_url"`
	ImageDir       string            `mapstructure:"image_dir"`
	MinTags        int               `mapstructure:"min_tags"`
	Offline        bool              `mapstructure:"offline"`
}

// DefaultConfig returns a Config with default values. Vendor rates are the
// nominal per-call estimates used by the cost ledger.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		RequestTimeout: 10 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     time.Second,
		Vendors: map[string]Vendor{
			"qwen":     {BaseURL: "https://api.siliconflow.cn/v1", CostPerCall: 0.01},
			"deepseek": {CostPerCall: 0.02},
			"longcat":  {CostPerCall: 0.005},
			"doubao":   {CostPerCall: 0.03},
			"glm":      {CostPerCall: 0.05},
		},
		Roles: Roles{
			Recipe:  "qwen",
			Content: "deepseek",
			Audit:   "longcat",
			Images:  "doubao",
			Publish: "glm",
		},
		MinTags: 5,
	}
}

// LoadConfig reads configuration from .env, config file and environment
// variables, in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	config := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".mealpost"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; defaults plus env still apply.
	}

	v.SetEnvPrefix("MEALPOST")
	v.AutomaticEnv()
	for _, key := range []string{"log_level", "recipe_tool_url", "publish_url", "image_dir", "offline", "min_tags"} {
		_ = v.BindEnv(key)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	bindVendorEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// bindVendorEnv fills vendor API keys and endpoints from the conventional
// per-vendor environment variables (QWEN_API_KEY, QWEN_BASE_URL, ...).
func bindVendorEnv(config *Config) {
	for name, vendor := range config.Vendors {
		upper := envName(name)
		if vendor.APIKey == "" {
			vendor.APIKey = os.Getenv(upper + "_API_KEY")
		}
		if base := os.Getenv(upper + "_BASE_URL"); base != "" {
			vendor.BaseURL = base
		}
		if model := os.Getenv(upper + "_MODEL"); model != "" {
			vendor.Model = model
		}
		config.Vendors[name] = vendor
	}
	if url := os.Getenv("RECIPE_TOOL_URL"); url != "" && config.RecipeToolURL == "" {
		config.RecipeToolURL = url
	}
	if url := os.Getenv("PUBLISH_URL"); url != "" && config.PublishURL == "" {
		config.PublishURL = url
	}
}

func envName(vendor string) string {
	return strings.ToUpper(strings.ReplaceAll(vendor, "-", "_"))
}

func validateConfig(config *Config) error {
	if config.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1, got %d", config.RetryAttempts)
	}
	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", config.RequestTimeout)
	}
	for _, role := range []string{config.Roles.Recipe, config.Roles.Content, config.Roles.Audit} {
		if role == "" {
			return fmt.Errorf("all vendor roles must be set")
		}
	}
	return nil
}

// CostRates extracts the per-call cost table used by the cost ledger.
func (c *Config) CostRates() map[string]float64 {
	rates := make(map[string]float64, len(c.Vendors))
	for name, vendor := range c.Vendors {
		rates[name] = vendor.CostPerCall
	}
	return rates
}
