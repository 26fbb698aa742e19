package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

const (
	schemaUnavailableMessage  = "Failed to load ECU schema. The tuning module is unavailable."
	optimizationFailedMessage = "Optimization request failed."
)

var (
	ErrSchemaNotLoaded = errors.New("ecu schema is not loaded")
	ErrUnknownParam    = errors.New("unknown ecu parameter")
	ErrInvalidGoal     = errors.New("goal must be maximize or minimize")
)

// detailer is implemented by remote errors that carry a user-facing message.
type detailer interface {
	Detail() string
}

type TuningService struct {
	tuner    ports.ECUTuner
	notifier ports.Notifier
	logger   *zap.Logger
}

func NewTuningService(tuner ports.ECUTuner, notifier ports.Notifier, logger *zap.Logger) *TuningService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TuningService{tuner: tuner, notifier: notifier, logger: logger}
}

func (s *TuningService) NewSession() *TuningSession {
	return &TuningSession{service: s, goal: domain.GoalMaximize}
}

// TuningSession holds one page's ECU state: the schema, the slider values and
// the last successful recommendation.
type TuningSession struct {
	service *TuningService

	loadMu sync.Mutex

	mu         sync.Mutex
	schema     *domain.EcuSchema
	params     domain.EcuConfig
	goal       domain.Goal
	result     *domain.Recommendation
	lastErr    string
	optimizing bool
}

// LoadSchema fetches the schema until one loads and seeds every parameter at
// its midpoint. A loaded schema is kept; a failed load is retried on the next
// call.
func (t *TuningSession) LoadSchema(ctx context.Context) error {
	t.loadMu.Lock()
	defer t.loadMu.Unlock()

	t.mu.Lock()
	loaded := t.schema != nil
	t.mu.Unlock()
	if loaded {
		return nil
	}

	schema, err := t.service.tuner.Schema(ctx)
	if err == nil {
		err = schema.Validate()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.service.logger.Warn("load ecu schema", zap.Error(err))
		t.lastErr = schemaUnavailableMessage
		return domain.ErrSchemaUnavailable
	}
	t.schema = &schema
	t.params = domain.DefaultConfig(schema)
	t.lastErr = ""

	return nil
}

// SetParam clamps value into the parameter's bounds and returns what was kept.
func (t *TuningSession) SetParam(key string, value float64) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.schema == nil {
		return 0, ErrSchemaNotLoaded
	}
	bounds, ok := t.schema.Bounds[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}

	clamped := bounds.Clamp(value)
	t.params[key] = clamped

	return clamped, nil
}

func (t *TuningSession) SetGoal(goal domain.Goal) error {
	if !goal.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidGoal, goal)
	}

	t.mu.Lock()
	t.goal = goal
	t.mu.Unlock()

	return nil
}

// Optimize posts the merged configuration. A failure leaves the previous
// recommendation in place; only a new success replaces it.
func (t *TuningSession) Optimize(ctx context.Context, cmd OptimizeCommand) (domain.Recommendation, error) {
	t.mu.Lock()
	if t.schema == nil {
		t.mu.Unlock()
		return domain.Recommendation{}, domain.ErrSchemaUnavailable
	}
	if t.optimizing {
		t.mu.Unlock()
		return domain.Recommendation{}, domain.ErrReplyInFlight
	}
	goal := t.goal
	if cmd.Goal != "" {
		if !cmd.Goal.Valid() {
			t.mu.Unlock()
			return domain.Recommendation{}, fmt.Errorf("%w: %q", ErrInvalidGoal, cmd.Goal)
		}
		goal = cmd.Goal
		t.goal = goal
	}
	params := t.params.Clone()
	t.optimizing = true
	t.lastErr = ""
	t.mu.Unlock()

	rec, err := t.optimize(ctx, cmd.VehicleState, params, goal)

	t.mu.Lock()
	t.optimizing = false
	if err != nil {
		t.lastErr = err.Error()
	} else {
		t.result = &rec
	}
	t.mu.Unlock()

	if err != nil {
		t.service.notifier.Notify(ctx, domain.Toast{
			Title:       "Optimization Failed",
			Description: err.Error(),
			Variant:     domain.ToastDestructive,
		})
		return domain.Recommendation{}, err
	}

	t.service.notifier.Notify(ctx, domain.Toast{
		Title:       "Optimization Complete!",
		Description: "AI has generated a new ECU profile for your vehicle.",
		Variant:     domain.ToastDefault,
	})

	return rec, nil
}

func (t *TuningSession) optimize(ctx context.Context, vehicleState map[string]string, params domain.EcuConfig, goal domain.Goal) (domain.Recommendation, error) {
	config, err := domain.MergeConfig(vehicleState, params)
	if err != nil {
		return domain.Recommendation{}, err
	}

	rec, err := t.service.tuner.Recommend(ctx, config, goal)
	if err != nil {
		t.service.logger.Warn("ecu recommend", zap.String("goal", string(goal)), zap.Error(err))
		return domain.Recommendation{}, errors.New(optimizationMessage(err))
	}

	return rec, nil
}

func optimizationMessage(err error) string {
	var d detailer
	if errors.As(err, &d) && strings.TrimSpace(d.Detail()) != "" {
		return d.Detail()
	}

	return optimizationFailedMessage
}

func (t *TuningSession) View() TuningView {
	t.mu.Lock()
	defer t.mu.Unlock()

	view := TuningView{
		Schema:     t.schema,
		Params:     t.params.Clone(),
		Goal:       t.goal,
		Error:      t.lastErr,
		Optimizing: t.optimizing,
	}
	if t.result != nil {
		rec := *t.result
		view.Result = &rec
	}

	return view
}
