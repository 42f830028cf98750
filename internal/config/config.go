// Package config loads service settings from defaults, an optional
// stockmaster.toml file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	SourceStatic   = "static"
	SourcePostgres = "postgres"
)

// EnvPrefix prefixes every environment override: server.port is read from
// STOCKMASTER_SERVER_PORT.
const EnvPrefix = "STOCKMASTER"

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Narrative   NarrativeConfig   `mapstructure:"narrative"`
	Source      SourceConfig      `mapstructure:"source"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Addr is the listen address for Port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Origins splits AllowedOrigins on commas, dropping blanks.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NarrativeConfig struct {
	Provider      string        `mapstructure:"provider"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute"`
	OpenAI        ModelConfig   `mapstructure:"openai"`
	Gemini        ModelConfig   `mapstructure:"gemini"`
}

type ModelConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SourceConfig struct {
	Kind string `mapstructure:"kind"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type PreferencesConfig struct {
	// Path of the TOML preferences file. Empty keeps preferences in memory.
	Path string `mapstructure:"path"`
}

// Load reads configuration. With an empty path, ./stockmaster.toml is used
// when present; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names are accepted as fallbacks.
	bindings := map[string][]string{
		"narrative.openai.api_key": {EnvPrefix + "_NARRATIVE_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"narrative.gemini.api_key": {EnvPrefix + "_NARRATIVE_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"database.url":             {EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
		"server.port":              {EnvPrefix + "_SERVER_PORT", "SERVER_PORT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("stockmaster")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Narrative.Provider = strings.ToLower(strings.TrimSpace(cfg.Narrative.Provider))
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("narrative.provider", ProviderNone)
	v.SetDefault("narrative.timeout", 15*time.Second)
	v.SetDefault("narrative.rate_per_minute", 30)
	v.SetDefault("narrative.openai.api_key", "")
	v.SetDefault("narrative.openai.model", "gpt-4o")
	v.SetDefault("narrative.gemini.api_key", "")
	v.SetDefault("narrative.gemini.model", "gemini-2.0-flash")
	v.SetDefault("source.kind", SourceStatic)
	v.SetDefault("database.url", "")
	v.SetDefault("preferences.path", "")
}

// Validate reports settings that cannot work together, all at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	switch c.Narrative.Provider {
	case ProviderNone:
	case ProviderOpenAI:
		if c.Narrative.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("narrative.openai.api_key (or OPENAI_API_KEY) is required for the openai provider"))
		}
	case ProviderGemini:
		if c.Narrative.Gemini.APIKey == "" {
			errs = append(errs, errors.New("narrative.gemini.api_key (or GEMINI_API_KEY) is required for the gemini provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("narrative.provider %q must be none, openai or gemini", c.Narrative.Provider))
	}
	if c.Narrative.Timeout <= 0 {
		errs = append(errs, errors.New("narrative.timeout must be positive"))
	}
	if c.Narrative.RatePerMinute < 0 {
		errs = append(errs, errors.New("narrative.rate_per_minute must not be negative"))
	}

	switch c.Source.Kind {
	case SourceStatic:
	case SourcePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url (or DATABASE_URL) is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("source.kind %q must be static or postgres", c.Source.Kind))
	}

	return errors.Join(errs...)
}
