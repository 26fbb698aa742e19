package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
	ProviderOllama Provider = "ollama"
)

// Config selects and configures one provider. Empty fields take provider
// defaults.
type Config struct {
	Provider   Provider
	Model      string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &http.Client{Timeout: timeout}
}

var providerKeyEnv = map[Provider][]string{
	ProviderGemini: {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	ProviderOpenAI: {"OPENAI_API_KEY"},
	ProviderClaude: {"ANTHROPIC_API_KEY"},
}

// detectionOrder is the order in which env keys pick a provider when none
// is configured.
var detectionOrder = []Provider{ProviderGemini, ProviderOpenAI, ProviderClaude}

// Resolve fills in the provider and API key from the environment. An
// explicit provider keeps its configured key and only falls back to its own
// env vars.
func Resolve(cfg Config, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))

	if cfg.Provider == "" {
		if cfg.APIKey != "" {
			cfg.Provider = ProviderGemini
		} else {
			for _, provider := range detectionOrder {
				if key := firstEnv(getenv, providerKeyEnv[provider]); key != "" {
					cfg.Provider = provider
					cfg.APIKey = key
					return cfg, nil
				}
			}
			return cfg, fmt.Errorf("no AI provider configured; set ai.provider or one of GEMINI_API_KEY, GOOGLE_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY")
		}
	}

	switch cfg.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
		if cfg.APIKey == "" {
			cfg.APIKey = firstEnv(getenv, providerKeyEnv[cfg.Provider])
		}
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("%s: API key is required (set ai.api_key or %s)", cfg.Provider, strings.Join(providerKeyEnv[cfg.Provider], "/"))
		}
	case ProviderOllama:
	default:
		return cfg, fmt.Errorf("unknown AI provider %q (valid: gemini, openai, claude, ollama)", cfg.Provider)
	}

	return cfg, nil
}

// New builds the configured model after resolving it against the
// environment.
func New(ctx context.Context, cfg Config) (Model, error) {
	resolved, err := Resolve(cfg, nil)
	if err != nil {
		return nil, err
	}

	switch resolved.Provider {
	case ProviderGemini:
		return NewGemini(ctx, resolved)
	case ProviderOpenAI:
		return NewOpenAI(resolved), nil
	case ProviderClaude:
		return NewClaude(resolved), nil
	default:
		return NewOllama(resolved), nil
	}
}

func firstEnv(getenv func(string) string, keys []string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
