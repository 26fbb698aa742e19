package ports

import (
	"context"
	"io"

	"github.com/bnema/motorsense/internal/domain"
)

type VehicleRegistry interface {
	Register(ctx context.Context, token string, registration domain.Registration) error
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.AuthSession, error)
	SignUp(ctx context.Context, fullName, email, password string) (domain.AuthSession, error)
}

type Diagnostics interface {
	ProbableCause(ctx context.Context, vehicleType, query string, topK int) ([]domain.ProbableCause, error)
}

type PartsCatalog interface {
	FindParts(ctx context.Context, query domain.PartsQuery) (domain.PartsResult, error)
}

type PartIdentifier interface {
	IdentifyPart(ctx context.Context, vehicleType, filename, contentType string, image io.Reader) (domain.PartIdentification, error)
}

type ECUTuner interface {
	Schema(ctx context.Context) (domain.EcuSchema, error)
	Recommend(ctx context.Context, config domain.EcuConfig, goal domain.Goal) (domain.Recommendation, error)
}
