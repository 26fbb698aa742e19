package ports

import (
	"context"

	"github.com/bnema/motorsense/internal/domain"
)

// Notifier is the toast side channel. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, toast domain.Toast)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, domain.Toast) {}
