// Package config loads motorsense settings. MOTORSENSE_* environment
// variables override ~/.motorsense/config.toml, which overrides the built-in
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".motorsense"
	envPrefix  = "MOTORSENSE"
)

const (
	SessionBackendFile      = "file"
	SessionBackendPassFirst = "pass-first"
)

type Config struct {
	Version     int               `mapstructure:"version"`
	Backend     BackendConfig     `mapstructure:"backend"`
	Accounts    AccountsConfig    `mapstructure:"accounts"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	AI          AIConfig          `mapstructure:"ai"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Session     SessionConfig     `mapstructure:"session"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`

	// Path is the file the config was read from, empty when none existed.
	Path string `mapstructure:"-"`
}

type BackendConfig struct {
	URL string `mapstructure:"url"`
}

type AccountsConfig struct {
	URL string `mapstructure:"url"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	PromptsDir string `mapstructure:"prompts_dir"`
}

type DiagnosticsConfig struct {
	TopK int `mapstructure:"topk"`
}

type SessionConfig struct {
	Dir     string `mapstructure:"dir"`
	Backend string `mapstructure:"backend"`
}

type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	SessionDB  string        `mapstructure:"session_db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults returns the built-in settings rooted at home.
func Defaults(home string) Config {
	base := filepath.Join(home, configDir)
	return Config{
		Version:     currentSchemaVersion,
		Backend:     BackendConfig{URL: "http://localhost:8000"},
		Accounts:    AccountsConfig{URL: "http://localhost:5000"},
		HTTP:        HTTPConfig{Timeout: 30 * time.Second},
		Diagnostics: DiagnosticsConfig{TopK: 3},
		Session:     SessionConfig{Dir: filepath.Join(base, "session"), Backend: SessionBackendFile},
		Server: ServerConfig{
			Addr:       "127.0.0.1:9002",
			SessionDB:  filepath.Join(base, "sessions.db"),
			SessionTTL: 7 * 24 * time.Hour,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// DefaultPath is where config init writes and Load looks by default.
func DefaultPath(home string) string {
	return filepath.Join(home, configDir, configName+"."+configType)
}

type LoadOptions struct {
	// Path overrides the config file location.
	Path string
	// Home overrides the user home directory.
	Home string
}

// Load merges defaults, the config file and the environment. A missing
// config file is not an error.
func Load(v *viper.Viper, opts LoadOptions) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	home := opts.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
	}

	setDefaults(v, Defaults(home))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(home, configDir))
	}

	path := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case opts.Path != "" && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		path = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.Session.Dir = expandHome(cfg.Session.Dir, home)
	cfg.Server.SessionDB = expandHome(cfg.Server.SessionDB, home)
	cfg.AI.PromptsDir = expandHome(cfg.AI.PromptsDir, home)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", c.Version, currentSchemaVersion)
	}
	if c.Backend.URL == "" {
		return errors.New("backend.url is required")
	}
	if c.Accounts.URL == "" {
		return errors.New("accounts.url is required")
	}
	if c.Diagnostics.TopK <= 0 {
		return fmt.Errorf("diagnostics.topk must be positive, got %d", c.Diagnostics.TopK)
	}
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendPassFirst:
	default:
		return fmt.Errorf("session.backend must be %q or %q, got %q", SessionBackendFile, SessionBackendPassFirst, c.Session.Backend)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("backend.url", d.Backend.URL)
	v.SetDefault("accounts.url", d.Accounts.URL)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("ai.provider", d.AI.Provider)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.api_key", d.AI.APIKey)
	v.SetDefault("ai.base_url", d.AI.BaseURL)
	v.SetDefault("ai.prompts_dir", d.AI.PromptsDir)
	v.SetDefault("diagnostics.topk", d.Diagnostics.TopK)
	v.SetDefault("session.dir", d.Session.Dir)
	v.SetDefault("session.backend", d.Session.Backend)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.session_db", d.Server.SessionDB)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
