package application

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

// Observer receives every workflow state in order. It is called synchronously
// from the goroutine running the analysis.
type Observer func(domain.WorkflowState)

type AnalysisService struct {
	vision   ports.VisionAnalyzer
	parts    ports.PartsDiscoverer
	roadmap  ports.RoadmapGenerator
	notifier ports.Notifier
	logger   *zap.Logger
}

func NewAnalysisService(vision ports.VisionAnalyzer, parts ports.PartsDiscoverer, roadmap ports.RoadmapGenerator, notifier ports.Notifier, logger *zap.Logger) *AnalysisService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnalysisService{
		vision:   vision,
		parts:    parts,
		roadmap:  roadmap,
		notifier: notifier,
		logger:   logger,
	}
}

// Run drives vision, parts and roadmap strictly in that order. The first
// failure ends the run; later steps are never called and nothing is retried.
func (s *AnalysisService) Run(ctx context.Context, vehicle domain.VehicleDescriptor, observe Observer) (domain.WorkflowState, error) {
	if observe == nil {
		observe = func(domain.WorkflowState) {}
	}

	state := domain.NewWorkflow()
	apply := func(event domain.WorkflowEvent) {
		state = domain.Reduce(state, event)
		observe(state)
	}
	fail := func(step string, err error) (domain.WorkflowState, error) {
		s.logger.Warn("analysis step failed", zap.String("step", step), zap.Error(err))
		apply(domain.WorkflowFailed{Err: err})
		return state, fmt.Errorf("%s: %w", step, err)
	}

	apply(domain.WorkflowStarted{})

	apply(domain.StepStarted{Name: domain.StepVision})
	analysis, err := s.vision.AnalyzeVehicle(ctx, vehicle.VisionInput())
	if err != nil {
		return fail(domain.StepVision, err)
	}
	apply(domain.VisionCompleted{Result: analysis})
	s.notifier.Notify(ctx, domain.Toast{
		Title:       "Vehicle Analysis Complete",
		Description: strconv.Itoa(len(analysis.DetectedIssues)) + " potential issues found.",
		Variant:     domain.ToastDefault,
	})

	apply(domain.StepStarted{Name: domain.StepParts})
	parts, err := s.parts.DiscoverParts(ctx, domain.PartsQuery{
		VehicleBrand: vehicle.Brand,
		VehicleModel: vehicle.Model,
		VehicleYear:  vehicle.Year,
		Parts:        append([]string(nil), analysis.DetectedIssues...),
	})
	if err != nil {
		return fail(domain.StepParts, err)
	}
	apply(domain.PartsCompleted{Result: parts})
	s.notifier.Notify(ctx, domain.Toast{
		Title:       "Parts Discovery Complete",
		Description: "Found compatible parts and prices.",
		Variant:     domain.ToastDefault,
	})

	apply(domain.StepStarted{Name: domain.StepRoadmap})
	roadmap, err := s.roadmap.GenerateRoadmap(ctx, domain.RoadmapInput{
		VehicleType:    vehicle.VehicleType,
		DetectedIssues: domain.RoadmapIssues(analysis.DetectedIssues, vehicle.Problem),
	})
	if err != nil {
		return fail(domain.StepRoadmap, err)
	}
	apply(domain.RoadmapCompleted{Result: roadmap})
	s.notifier.Notify(ctx, domain.Toast{
		Title:       "Roadmap Generated",
		Description: "Your maintenance plan is ready.",
		Variant:     domain.ToastDefault,
	})

	apply(domain.WorkflowFinished{})
	s.logger.Debug("analysis finished",
		zap.String("vehicle", vehicle.Title()),
		zap.Int("issues", len(analysis.DetectedIssues)),
		zap.Int("parts", len(parts.Parts)))

	return state, nil
}

// AnalysisRun makes sure one mounted results view starts the orchestration
// at most once. Later callers wait for and share the first outcome.
type AnalysisRun struct {
	service *AnalysisService
	vehicle domain.VehicleDescriptor

	once  sync.Once
	state domain.WorkflowState
	err   error
}

func NewAnalysisRun(service *AnalysisService, vehicle domain.VehicleDescriptor) *AnalysisRun {
	return &AnalysisRun{service: service, vehicle: vehicle, state: domain.NewWorkflow()}
}

func (r *AnalysisRun) Start(ctx context.Context, observe Observer) (domain.WorkflowState, error) {
	r.once.Do(func() {
		r.state, r.err = r.service.Run(ctx, r.vehicle, observe)
	})

	return r.state, r.err
}

func (r *AnalysisRun) Vehicle() domain.VehicleDescriptor {
	return r.vehicle
}
