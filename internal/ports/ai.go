package ports

import (
	"context"

	"github.com/bnema/motorsense/internal/domain"
)

type VisionAnalyzer interface {
	AnalyzeVehicle(ctx context.Context, input domain.VisionInput) (domain.AnalysisResult, error)
}

type PartsDiscoverer interface {
	DiscoverParts(ctx context.Context, query domain.PartsQuery) (domain.PartsResult, error)
}

type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, input domain.RoadmapInput) (domain.RoadmapResult, error)
}

type Diagnoser interface {
	Diagnose(ctx context.Context, input domain.DiagnosisInput) (string, error)
}
