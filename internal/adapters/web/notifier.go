package web

import (
	"context"
	"sync"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
)

type toastSinkKey struct{}

// RequestNotifier delivers toasts to whatever sink the current request put in
// its context. Toasts raised outside a request are dropped.
type RequestNotifier struct{}

var _ ports.Notifier = RequestNotifier{}

func (RequestNotifier) Notify(ctx context.Context, toast domain.Toast) {
	if sink, ok := ctx.Value(toastSinkKey{}).(func(domain.Toast)); ok && sink != nil {
		sink(toast)
	}
}

func withToastSink(ctx context.Context, sink func(domain.Toast)) context.Context {
	return context.WithValue(ctx, toastSinkKey{}, sink)
}

// toastCollector gathers the toasts raised while one page request runs.
type toastCollector struct {
	mu     sync.Mutex
	toasts []domain.Toast
}

func (c *toastCollector) add(toast domain.Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.toasts = append(c.toasts, toast)
}

func (c *toastCollector) drain() []domain.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.toasts
	c.toasts = nil
	return out
}
