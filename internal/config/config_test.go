package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(viper.New(), LoadOptions{Home: home})
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, "http://localhost:5000", cfg.Accounts.URL)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.Diagnostics.TopK)
	assert.Equal(t, filepath.Join(home, ".motorsense", "session"), cfg.Session.Dir)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, 7*24*time.Hour, cfg.Server.SessionTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadReadsFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	path := DefaultPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`
version = 1

[backend]
url = "http://diag.internal:8000"

[http]
timeout = "5s"

[ai]
provider = "ollama"
prompts_dir = "~/prompts"

[diagnostics]
topk = 5
`), 0o600))

	t.Setenv("MOTORSENSE_DIAGNOSTICS_TOPK", "7")
	t.Setenv("MOTORSENSE_AI_MODEL", "llama3.1")

	cfg, err := Load(viper.New(), LoadOptions{Home: home})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "http://diag.internal:8000", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, "llama3.1", cfg.AI.Model)
	assert.Equal(t, filepath.Join(home, "prompts"), cfg.AI.PromptsDir)
	assert.Equal(t, 7, cfg.Diagnostics.TopK)
}

func TestLoadExplicitMissingPathUsesDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(viper.New(), LoadOptions{Home: home, Path: filepath.Join(home, "nope.toml")})
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "future version", body: "version = 9\n", wantErr: "unsupported config schema version 9"},
		{name: "bad session backend", body: "[session]\nbackend = \"keyring\"\n", wantErr: "session.backend"},
		{name: "zero topk", body: "[diagnostics]\ntopk = 0\n", wantErr: "diagnostics.topk must be positive"},
		{name: "malformed toml", body: "[backend\n", wantErr: "read config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			path := filepath.Join(home, "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o600))

			_, err := Load(viper.New(), LoadOptions{Home: home, Path: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestWriteRoundTripsThroughLoad(t *testing.T) {
	home := t.TempDir()
	path := DefaultPath(home)

	want := Defaults(home)
	want.AI.Provider = "gemini"
	want.Server.SessionTTL = 12 * time.Hour
	require.NoError(t, Write(path, want, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(configFileMode), info.Mode().Perm())

	got, err := Load(viper.New(), LoadOptions{Home: home})
	require.NoError(t, err)
	got.Path = ""
	assert.Equal(t, want, got)
}

func TestWriteRefusesToOverwriteWithoutForce(t *testing.T) {
	home := t.TempDir()
	path := DefaultPath(home)

	require.NoError(t, Write(path, Defaults(home), false))
	require.ErrorIs(t, Write(path, Defaults(home), false), ErrConfigExists)
	require.NoError(t, Write(path, Defaults(home), true))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEncodeWritesDurationsAsStrings(t *testing.T) {
	t.Parallel()

	data, err := Encode(Defaults("/home/ada"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout = '30s'")
	assert.Contains(t, string(data), "session_ttl = '168h0m0s'")
}
