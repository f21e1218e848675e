// Package config loads wortlens configuration with viper.
//
// Sources, lowest precedence first: built-in defaults, ~/.wortlens/config.toml,
// WORTLENS_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// EnvPrefix prefixes every environment override, e.g. WORTLENS_TRANSLATE_PROVIDER.
const EnvPrefix = "WORTLENS"

// Config is the typed application configuration.
type Config struct {
	// Dir is the wortlens home (~/.wortlens). Not read from the file.
	Dir string `mapstructure:"-"`

	Extract struct {
		MaxBytes   int64  `mapstructure:"max_bytes"`
		PDFBackend string `mapstructure:"pdf_backend"`
	} `mapstructure:"extract"`

	NLP struct {
		Model          string        `mapstructure:"model"`
		ModelDir       string        `mapstructure:"model_dir"`
		ModelURL       string        `mapstructure:"model_url"`
		DisableBundled bool          `mapstructure:"disable_bundled"`
		Timeout        time.Duration `mapstructure:"timeout"`

		// Required aborts startup of model-dependent commands when no
		// model can be loaded. When false they fall back to frequency only.
		Required bool `mapstructure:"required"`
	} `mapstructure:"nlp"`

	Translate struct {
		Provider      string        `mapstructure:"provider"`
		APIKey        string        `mapstructure:"api_key"`
		BaseURL       string        `mapstructure:"base_url"`
		Model         string        `mapstructure:"model"`
		Source        string        `mapstructure:"source"`
		Target        string        `mapstructure:"target"`
		Languages     []string      `mapstructure:"languages"`
		Timeout       time.Duration `mapstructure:"timeout"`
		ChunkSize     int           `mapstructure:"chunk_size"`
		RatePerSecond float64       `mapstructure:"rate_per_second"`
		Burst         int           `mapstructure:"burst"`
	} `mapstructure:"translate"`

	Analysis struct {
		Top        int      `mapstructure:"top"`
		Categories []string `mapstructure:"categories"`
	} `mapstructure:"analysis"`

	Server struct {
		Addr        string        `mapstructure:"addr"`
		SessionTTL  time.Duration `mapstructure:"session_ttl"`
		CORSOrigins []string      `mapstructure:"cors_origins"`
		JSONLogs    bool          `mapstructure:"json_logs"`
	} `mapstructure:"server"`

	MCP struct {
		Port int    `mapstructure:"port"`
		Host string `mapstructure:"host"`
	} `mapstructure:"mcp"`

	Display struct {
		ExpandLimit int `mapstructure:"expand_limit"`
	} `mapstructure:"display"`
}

// Options control where configuration is read from.
type Options struct {
	// Dir overrides the wortlens home. Defaults to $WORTLENS_HOME or ~/.wortlens.
	Dir string

	// File overrides the config file path.
	File string

	// Flags maps config keys to command-line flags. Only changed flags override.
	Flags map[string]*pflag.Flag
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extract.max_bytes", 20<<20)
	v.SetDefault("extract.pdf_backend", "native")

	v.SetDefault("nlp.model", "de_core_lexicon")
	v.SetDefault("nlp.model_dir", "")
	v.SetDefault("nlp.model_url", "")
	v.SetDefault("nlp.disable_bundled", false)
	v.SetDefault("nlp.timeout", 30*time.Second)
	v.SetDefault("nlp.required", true)

	v.SetDefault("translate.provider", string(domain.ProviderGoogle))
	v.SetDefault("translate.api_key", "")
	v.SetDefault("translate.base_url", "")
	v.SetDefault("translate.model", "")
	v.SetDefault("translate.source", string(domain.DefaultSourceLanguage))
	v.SetDefault("translate.target", string(domain.DefaultTargetLanguage))
	v.SetDefault("translate.languages", languageStrings(domain.DefaultLanguages()))
	v.SetDefault("translate.timeout", 60*time.Second)
	v.SetDefault("translate.chunk_size", 4500)
	v.SetDefault("translate.rate_per_second", 5.0)
	v.SetDefault("translate.burst", 1)

	v.SetDefault("analysis.top", 10)
	v.SetDefault("analysis.categories", categoryStrings(domain.DefaultCategories()))

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", 30*time.Minute)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.json_logs", false)

	v.SetDefault("mcp.port", 0)
	v.SetDefault("mcp.host", "127.0.0.1")

	v.SetDefault("display.expand_limit", 10)
}

// Load reads and validates configuration.
func Load(opts Options) (*Config, error) {
	dir, err := resolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("toml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(opts.File == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = dir
	if cfg.NLP.ModelDir == "" {
		cfg.NLP.ModelDir = filepath.Join(dir, "models")
	}
	if cfg.Translate.APIKey == "" {
		cfg.Translate.APIKey = providerKeyFromEnv(domain.TranslationProvider(cfg.Translate.Provider))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&cfg)
	cfg.Dir = dir
	cfg.NLP.ModelDir = filepath.Join(dir, "models")
	return &cfg
}

// SettingsPath returns the file the settings command writes to.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, "config.toml")
}

// PromptDir returns the directory of editable LLM prompts.
func (c *Config) PromptDir() string {
	return filepath.Join(c.Dir, "prompts")
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv(EnvPrefix + "_HOME"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".wortlens"), nil
}

// providerKeyFromEnv reads the provider's conventional API key variable.
func providerKeyFromEnv(p domain.TranslationProvider) string {
	switch p {
	case domain.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	case domain.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

func languageStrings(langs []domain.Language) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = l.String()
	}
	return out
}

func categoryStrings(cats []domain.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.String()
	}
	return out
}
