package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.MinTags)
	assert.Equal(t, "qwen", cfg.Roles.Recipe)
	assert.Equal(t, "longcat", cfg.Roles.Audit)

	rates := cfg.CostRates()
	assert.InDelta(t, 0.01, rates["qwen"], 1e-9)
	assert.InDelta(t, 0.02, rates["deepseek"], 1e-9)
	assert.InDelta(t, 0.005, rates["longcat"], 1e-9)
	assert.InDelta(t, 0.03, rates["doubao"], 1e-9)
	assert.InDelta(t, 0.05, rates["glm"], 1e-9)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.RetryAttempts)
}

func TestLoadConfigVendorEnvBinding(t *testing.T) {
	t.Setenv("QWEN_API_KEY", "sk-test")
	t.Setenv("QWEN_MODEL", "qwen-plus")
	t.Setenv("DEEPSEEK_BASE_URL", "https://api.deepseek.example/v1")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Vendors["qwen"].APIKey)
	assert.Equal(t, "qwen-plus", cfg.Vendors["qwen"].Model)
	assert.Equal(t, "https://api.deepseek.example/v1", cfg.Vendors["deepseek"].BaseURL)
}

func TestValidateConfigRejectsBadRetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryAttempts = 0
	assert.Error(t, validateConfig(cfg))

	cfg = DefaultConfig()
	cfg.RequestTimeout = 0
	assert.Error(t, validateConfig(cfg))

	cfg = DefaultConfig()
	cfg.Roles.Audit = ""
	assert.Error(t, validateConfig(cfg))
}
