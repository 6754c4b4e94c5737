// Package config loads wordwise settings from an optional YAML file and
// WORDWISE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/wordwise/internal/llm"
	"github.com/abhisek/wordwise/internal/logging"
)

// EnvPrefix is prepended to every environment variable viper reads.
const EnvPrefix = "WORDWISE"

// Config is the merged configuration.
type Config struct {
	DB     string       `mapstructure:"db"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// ProviderConfig holds credentials for one LLM vendor.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig selects and configures the LLM provider.
type LLMConfig struct {
	Provider      string         `mapstructure:"provider"`
	RatePerMinute int            `mapstructure:"rate_per_minute"`
	Gemini        ProviderConfig `mapstructure:"gemini"`
	Anthropic     ProviderConfig `mapstructure:"anthropic"`
	OpenAI        ProviderConfig `mapstructure:"openai"`
	OpenRouter    ProviderConfig `mapstructure:"openrouter"`
}

// SheetsConfig holds Google Sheets import defaults. The sheet ID and range
// stored in the database take effect when these are empty.
type SheetsConfig struct {
	APIKey  string `mapstructure:"api_key"`
	SheetID string `mapstructure:"sheet_id"`
	Range   string `mapstructure:"range"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ServerConfig configures `wordwise serve`.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
}

func setDefaults(v *viper.Viper) {
	for _, p := range []string{"gemini", "anthropic", "openai", "openrouter"} {
		for _, f := range []string{"api_key", "model", "base_url"} {
			v.SetDefault("llm."+p+"."+f, "")
		}
	}
	v.SetDefault("db", "")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.rate_per_minute", llm.DefaultConfig().RatePerMinute)
	v.SetDefault("sheets.api_key", "")
	v.SetDefault("sheets.sheet_id", "")
	v.SetDefault("sheets.range", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.token_ttl", "12h")
}

// Vendor-style key names accepted alongside the prefixed ones.
var envAliases = map[string][]string{
	"llm.gemini.api_key":     {"WORDWISE_LLM_GEMINI_API_KEY", "WORDWISE_GEMINI_API_KEY"},
	"llm.anthropic.api_key":  {"WORDWISE_LLM_ANTHROPIC_API_KEY", "WORDWISE_ANTHROPIC_API_KEY"},
	"llm.openai.api_key":     {"WORDWISE_LLM_OPENAI_API_KEY", "WORDWISE_OPENAI_API_KEY"},
	"llm.openrouter.api_key": {"WORDWISE_LLM_OPENROUTER_API_KEY", "WORDWISE_OPENROUTER_API_KEY"},
	"sheets.api_key":         {"WORDWISE_SHEETS_API_KEY", "GOOGLE_SHEETS_API_KEY"},
}

// DefaultFile returns $XDG_CONFIG_HOME/wordwise/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultFile() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wordwise", "config.yaml"), nil
}

// Load reads configuration. An explicit path must exist; the default file is
// optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		def, err := DefaultFile()
		if err != nil {
			return nil, err
		}
		path = def
	}
	v.SetConfigFile(path)

	readErr := v.ReadInConfig()
	switch {
	case readErr == nil:
	case !explicit && isNotFound(readErr):
		readErr = nil
	default:
		return nil, fmt.Errorf("read config %s: %w", path, readErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if readErr == nil && v.ConfigFileUsed() != "" {
		if _, err := os.Stat(v.ConfigFileUsed()); err == nil {
			cfg.File = v.ConfigFileUsed()
		}
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Logging converts the log section into a logging.Config.
func (c *Config) Logging(console bool) logging.Config {
	lc := logging.DefaultConfig()
	lc.File = c.Log.File
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	lc.Console = console
	return lc
}

// LLMConfig resolves the provider settings. An explicit llm.provider wins;
// otherwise vendor API keys in the environment are probed. ok is false when
// no provider is available and AI features should stay off.
func (c *Config) LLMConfig() (cfg llm.Config, ok bool) {
	if c.LLM.Provider != "" {
		cfg = llm.DefaultConfig()
		cfg.Provider = c.LLM.Provider
		ok = true
	} else if cfg, ok = llm.DiscoverConfig(); !ok {
		return llm.Config{}, false
	}

	overlay(&cfg.Gemini.APIKey, &cfg.Gemini.Model, &cfg.Gemini.BaseURL, c.LLM.Gemini)
	overlay(&cfg.Anthropic.APIKey, &cfg.Anthropic.Model, &cfg.Anthropic.BaseURL, c.LLM.Anthropic)
	overlay(&cfg.OpenAI.APIKey, &cfg.OpenAI.Model, &cfg.OpenAI.BaseURL, c.LLM.OpenAI)
	overlay(&cfg.OpenRouter.APIKey, &cfg.OpenRouter.Model, &cfg.OpenRouter.BaseURL, c.LLM.OpenRouter)
	if c.LLM.RatePerMinute != 0 {
		cfg.RatePerMinute = c.LLM.RatePerMinute
	}
	return cfg, true
}

func overlay(key, model, baseURL *string, src ProviderConfig) {
	if src.APIKey != "" {
		*key = src.APIKey
	}
	if src.Model != "" {
		*model = src.Model
	}
	if src.BaseURL != "" {
		*baseURL = src.BaseURL
	}
}
