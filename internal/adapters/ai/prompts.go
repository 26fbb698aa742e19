package ai

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	PromptVision  = "vision"
	PromptParts   = "parts"
	PromptRoadmap = "roadmap"
)

const templateExt = ".tmpl"

var promptNames = []string{PromptVision, PromptParts, PromptRoadmap}

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

// Prompts holds the flow templates. Files named <flow>.tmpl in the override
// directory replace the built-in text.
type Prompts struct {
	dir    string
	logger *zap.Logger

	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewPrompts(dir string, logger *zap.Logger) (*Prompts, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Prompts{dir: dir, logger: logger}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the built-in templates and any overrides. On error the
// previous set stays active.
func (p *Prompts) Reload() error {
	templates := make(map[string]*template.Template, len(promptNames))
	for _, name := range promptNames {
		text, source, err := p.read(name)
		if err != nil {
			return err
		}

		tmpl, err := template.New(name).Funcs(promptFuncs).Option("missingkey=error").Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s prompt from %s: %w", name, source, err)
		}
		templates[name] = tmpl
	}

	p.mu.Lock()
	p.templates = templates
	p.mu.Unlock()
	return nil
}

func (p *Prompts) read(name string) (string, string, error) {
	if p.dir != "" {
		path := filepath.Join(p.dir, name+templateExt)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return string(data), path, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", "", fmt.Errorf("read %s prompt override: %w", name, err)
		}
	}

	data, err := embeddedPrompts.ReadFile("prompts/" + name + templateExt)
	if err != nil {
		return "", "", fmt.Errorf("read built-in %s prompt: %w", name, err)
	}
	return string(data), "built-in", nil
}

func (p *Prompts) Render(name string, data any) (string, error) {
	p.mu.RLock()
	tmpl, ok := p.templates[name]
	p.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Watch reloads the templates whenever a file in the override directory
// changes. It blocks until ctx is done. Without a directory it just waits.
func (p *Prompts) Watch(ctx context.Context) error {
	if p.dir == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(p.dir); err != nil {
		return fmt.Errorf("watch prompt directory %s: %w", p.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != templateExt {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := p.Reload(); err != nil {
				p.logger.Warn("prompt reload failed, keeping previous templates", zap.String("file", event.Name), zap.Error(err))
				continue
			}
			p.logger.Info("prompts reloaded", zap.String("file", event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("prompt watcher error", zap.Error(err))
		}
	}
}
