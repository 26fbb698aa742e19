package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/motorsense/internal/adapters/ai"
	"github.com/bnema/motorsense/internal/adapters/backend"
	"github.com/bnema/motorsense/internal/adapters/llm"
	"github.com/bnema/motorsense/internal/adapters/render/terminal"
	chainstore "github.com/bnema/motorsense/internal/adapters/store/chain"
	filestore "github.com/bnema/motorsense/internal/adapters/store/file"
	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/config"
	"github.com/bnema/motorsense/internal/logging"
	"github.com/bnema/motorsense/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const passPrefix = "motorsense"

type rootOptions struct {
	configPath string
	verbose    bool
}

type app struct {
	cfg         config.Config
	logger      *zap.Logger
	store       ports.KeyValueStore
	accounts    *backend.Accounts
	diagnostics *backend.Diagnostics
	clock       ports.Clock
}

func wireApp(opts rootOptions) (*app, error) {
	cfg, err := config.Load(viper.New(), config.LoadOptions{Path: opts.configPath})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	store, err := newSessionStore(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	logger.Debug("config loaded",
		zap.String("path", cfg.Path),
		zap.String("backend", cfg.Backend.URL),
		zap.String("accounts", cfg.Accounts.URL),
		zap.String("session_backend", cfg.Session.Backend))

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		accounts: backend.NewAccounts(backend.Client{
			BaseURL:        cfg.Accounts.URL,
			HTTPClient:     httpClient,
			RequestTimeout: cfg.HTTP.Timeout,
		}),
		diagnostics: backend.NewDiagnostics(backend.Client{
			BaseURL:        cfg.Backend.URL,
			HTTPClient:     httpClient,
			RequestTimeout: cfg.HTTP.Timeout,
		}),
		clock: ports.SystemClock{},
	}, nil
}

func newSessionStore(cfg config.SessionConfig) (ports.KeyValueStore, error) {
	switch cfg.Backend {
	case config.SessionBackendPassFirst:
		return chainstore.NewPassFirstWithFileFallback(passPrefix, cfg.Dir)
	default:
		return filestore.NewStore(cfg.Dir), nil
	}
}

func (a *app) sessionService() *application.SessionService {
	return application.NewSessionService(a.store, a.accounts, a.logger)
}

// toasts prints notifications on w, which is stderr for every command so
// that -o json stays machine readable.
func (a *app) toasts(w io.Writer) ports.Notifier {
	return terminal.NewToastPrinter(w)
}

func (a *app) intakeService(notifier ports.Notifier) *application.IntakeService {
	return application.NewIntakeService(a.accounts, notifier, a.clock, a.logger)
}

func (a *app) identifyService(notifier ports.Notifier) *application.IdentifyService {
	return application.NewIdentifyService(a.diagnostics, notifier, a.logger)
}

func (a *app) tuningService(notifier ports.Notifier) *application.TuningService {
	return application.NewTuningService(a.diagnostics, notifier, a.logger)
}

func (a *app) partsService() *application.PartsService {
	return application.NewPartsService(a.diagnostics)
}

func (a *app) chatService() *application.ChatService {
	return application.NewChatService(ai.NewDiagnoser(a.diagnostics, a.cfg.Diagnostics.TopK, a.logger), a.logger)
}

// analysisFlows builds the model-backed flows. The model is only resolved
// here, so commands that never call it work without an API key.
func (a *app) analysisFlows(ctx context.Context) (*ai.Flows, *ai.Prompts, error) {
	prompts, err := ai.NewPrompts(a.cfg.AI.PromptsDir, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load prompts: %w", err)
	}

	model, err := llm.New(ctx, llm.Config{
		Provider: llm.Provider(a.cfg.AI.Provider),
		Model:    a.cfg.AI.Model,
		APIKey:   a.cfg.AI.APIKey,
		BaseURL:  a.cfg.AI.BaseURL,
		Timeout:  2 * time.Minute,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wire model: %w", err)
	}
	a.logger.Debug("model ready", zap.String("model", model.Name()))

	return ai.NewFlows(model, prompts, a.diagnostics, a.logger), prompts, nil
}
