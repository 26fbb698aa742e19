package ports

import (
	"context"
	"time"

	"github.com/bnema/motorsense/internal/domain"
)

// SessionRepository keeps web sessions keyed by an opaque id. Get returns
// domain.ErrSessionNotFound for unknown or expired ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (domain.WebSession, error)
	Save(ctx context.Context, session domain.WebSession) error
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
