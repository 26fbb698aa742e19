package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	currentSchemaVersion = 1
	configFileMode       = 0o600
	configDirMode        = 0o700
	tempFilePattern      = ".config-*.toml.tmp"
)

var ErrConfigExists = errors.New("config file already exists")

// fileSchema is the on-disk layout. Durations are kept as strings so the
// file stays hand-editable.
type fileSchema struct {
	Version     int               `toml:"version"`
	Backend     urlSchema         `toml:"backend"`
	Accounts    urlSchema         `toml:"accounts"`
	HTTP        httpSchema        `toml:"http"`
	AI          aiSchema          `toml:"ai"`
	Diagnostics diagnosticsSchema `toml:"diagnostics"`
	Session     sessionSchema     `toml:"session"`
	Server      serverSchema      `toml:"server"`
	Log         logSchema         `toml:"log"`
}

type urlSchema struct {
	URL string `toml:"url"`
}

type httpSchema struct {
	Timeout string `toml:"timeout"`
}

type aiSchema struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	PromptsDir string `toml:"prompts_dir"`
}

type diagnosticsSchema struct {
	TopK int `toml:"topk"`
}

type sessionSchema struct {
	Dir     string `toml:"dir"`
	Backend string `toml:"backend"`
}

type serverSchema struct {
	Addr       string `toml:"addr"`
	SessionDB  string `toml:"session_db"`
	SessionTTL string `toml:"session_ttl"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func toSchema(c Config) fileSchema {
	version := c.Version
	if version == 0 {
		version = currentSchemaVersion
	}

	return fileSchema{
		Version:  version,
		Backend:  urlSchema{URL: c.Backend.URL},
		Accounts: urlSchema{URL: c.Accounts.URL},
		HTTP:     httpSchema{Timeout: c.HTTP.Timeout.String()},
		AI: aiSchema{
			Provider:   c.AI.Provider,
			Model:      c.AI.Model,
			APIKey:     c.AI.APIKey,
			BaseURL:    c.AI.BaseURL,
			PromptsDir: c.AI.PromptsDir,
		},
		Diagnostics: diagnosticsSchema{TopK: c.Diagnostics.TopK},
		Session:     sessionSchema{Dir: c.Session.Dir, Backend: c.Session.Backend},
		Server: serverSchema{
			Addr:       c.Server.Addr,
			SessionDB:  c.Server.SessionDB,
			SessionTTL: c.Server.SessionTTL.String(),
		},
		Log: logSchema{Level: c.Log.Level, Format: c.Log.Format},
	}
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode config file: %w", err)
	}
	return data, nil
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.Mutex{}
)

func lockForPath(path string) *sync.Mutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	pathLockMap[path] = mu
	return mu
}

// Write stores cfg at path through a temp file and rename. Unless force is
// set an existing file is left alone and ErrConfigExists is returned.
func Write(path string, cfg Config, force bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	mu := lockForPath(absPath)
	mu.Lock()
	defer mu.Unlock()

	if !force {
		if _, err := os.Stat(absPath); err == nil {
			return fmt.Errorf("%s: %w", absPath, ErrConfigExists)
		}
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(absPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, absPath); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
