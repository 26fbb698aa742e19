// Package web serves the browser front-end: server-rendered pages, the
// analysis event stream and a proxy to the accounts backend.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	defaultSessionTTL    = 7 * 24 * time.Hour
	defaultPurgeInterval = time.Hour
	shutdownTimeout      = 5 * time.Second

	missingInfoDetail = "Vehicle data is missing. Please start the analysis process from the beginning."
)

// pageFiles lists each page with the partials it includes besides the layout.
var pageFiles = map[string][]string{
	"home":      nil,
	"login":     nil,
	"signup":    nil,
	"analyze":   nil,
	"mission":   nil,
	"category":  nil,
	"results":   {"dashboard"},
	"diagnosis": nil,
	"identify":  nil,
	"tuning":    {"recommendation"},
	"missing":   nil,
}

// Services are the orchestrators the pages drive. Build them with
// RequestNotifier so their toasts reach the page that caused them.
type Services struct {
	Analysis *application.AnalysisService
	Chat     *application.ChatService
	Tuning   *application.TuningService
	Intake   *application.IntakeService
	Identify *application.IdentifyService
	Accounts ports.Authenticator
}

type Options struct {
	Addr          string
	AccountsURL   string
	SessionTTL    time.Duration
	PurgeInterval time.Duration
	Clock         ports.Clock
}

type Server struct {
	services Services
	sessions ports.SessionRepository
	opts     Options
	clock    ports.Clock
	pages    map[string]*template.Template
	markdown *markdownRenderer
	states   *stateStore
	proxy    http.Handler
	logger   *zap.Logger
}

func NewServer(services Services, sessions ports.SessionRepository, opts Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.PurgeInterval <= 0 {
		opts.PurgeInterval = defaultPurgeInterval
	}
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		services: services,
		sessions: sessions,
		opts:     opts,
		clock:    clock,
		pages:    pages,
		markdown: newMarkdownRenderer(),
		states:   newStateStore(),
		logger:   logger,
	}

	if opts.AccountsURL != "" {
		proxy, err := s.newAccountsProxy(opts.AccountsURL)
		if err != nil {
			return nil, err
		}
		s.proxy = proxy
	}

	return s, nil
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"join":     strings.Join,
		"percent":  func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"score":    func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
		"fixed":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"signed":   func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
		"price":    formatPrice,
		"label":    domain.ParamLabel,
		"humanize": domain.HumanizeLabel,
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for name, partials := range pageFiles {
		patterns := []string{"templates/layout.html", "templates/" + name + ".html"}
		for _, partial := range partials {
			patterns = append(patterns, "templates/"+partial+".html")
		}

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return pages, nil
}

// Handler returns the complete routing tree with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	staticContent, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticContent)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if s.proxy != nil {
		mux.Handle("/api/auth/", s.proxy)
		mux.Handle("/api/vehicles", s.proxy)
	}

	pages := http.NewServeMux()
	pages.HandleFunc("GET /{$}", s.handleHome)
	pages.HandleFunc("GET "+application.PathLogin, s.handleLoginForm)
	pages.HandleFunc("POST "+application.PathLogin, s.handleLogin)
	pages.HandleFunc("GET "+application.PathSignUp, s.handleSignUpForm)
	pages.HandleFunc("POST "+application.PathSignUp, s.handleSignUp)
	pages.HandleFunc("POST /logout", s.handleLogout)
	pages.HandleFunc("GET "+application.PathAnalyze, s.handleIntakeForm)
	pages.HandleFunc("POST "+application.PathAnalyze, s.handleIntake)
	pages.HandleFunc("GET "+application.PathMissionSelection, s.handleMissionSelection)
	pages.HandleFunc("GET "+application.PathOperationalCategory, s.handleOperationalCategory)
	pages.HandleFunc("GET "+application.PathResults, s.handleResults)
	pages.HandleFunc("GET "+application.PathResults+"/stream", s.handleResultsStream)
	pages.HandleFunc("GET "+application.PathCriticalDiagnosis, s.handleDiagnosis)
	pages.HandleFunc("POST "+application.PathCriticalDiagnosis, s.handleDiagnosisMessage)
	pages.HandleFunc("GET "+application.PathPartIdentification, s.handleIdentifyForm)
	pages.HandleFunc("POST "+application.PathPartIdentification, s.handleIdentify)
	pages.HandleFunc("GET "+application.PathECUTuning, s.handleTuning)
	pages.HandleFunc("POST "+application.PathECUTuning, s.handleOptimize)
	mux.Handle("/", s.withSession(pages))

	return s.recoverPanics(s.logRequests(mux))
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. Request contexts derive from ctx so open event streams end too.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	s.logger.Info("web server listening", zap.String("addr", ln.Addr().String()))

	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		s.logger.Info("web server stopped")
		return nil
	})

	g.Go(func() error {
		s.purgeLoop(gctx)
		return nil
	})

	return g.Wait()
}

func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purge(ctx)
		}
	}
}

func (s *Server) purge(ctx context.Context) {
	now := s.clock.Now()
	removed, err := s.sessions.PurgeExpired(ctx, now)
	if err != nil {
		s.logger.Warn("purge expired web sessions", zap.Error(err))
	}
	evicted := s.states.evictIdle(now.Add(-s.opts.SessionTTL))
	if removed > 0 || evicted > 0 {
		s.logger.Debug("purged web sessions", zap.Int64("sessions", removed), zap.Int("states", evicted))
	}
}

// page is the data every template receives. Data holds the page's own view.
type page struct {
	Title  string
	Auth   domain.AuthSession
	Toasts []domain.Toast
	Back   string
	Data   any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	if rs := sessionFrom(r.Context()); rs != nil {
		auth, err := s.sessionService(rs).Load(r.Context())
		if err != nil {
			s.logger.Warn("load auth session", zap.Error(err))
		}
		p.Auth = auth
		p.Toasts = append(rs.state.popFlash(), rs.toasts.drain()...)
	}

	tmpl, ok := s.pages[name]
	if !ok {
		s.logger.Error("unknown page template", zap.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		s.logger.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect carries this request's toasts over to the page it sends the
// browser to.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if rs := sessionFrom(r.Context()); rs != nil {
		rs.state.pushFlash(rs.toasts.drain())
	}

	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (s *Server) renderMissing(w http.ResponseWriter, r *http.Request, err error) {
	var missing *domain.MissingFieldsError
	_ = errors.As(err, &missing)

	s.render(w, r, http.StatusBadRequest, "missing", page{
		Title: "Missing Information",
		Data:  missing,
	})
}

func formatPrice(price float64) string {
	if price == math.Trunc(price) {
		return fmt.Sprintf("$%.0f", price)
	}

	return fmt.Sprintf("$%.2f", price)
}

// userMessage is the innermost error text, which is what the backend or the
// validation layer said.
func userMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
