package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

type IntakeService struct {
	registry ports.VehicleRegistry
	notifier ports.Notifier
	clock    ports.Clock
	logger   *zap.Logger
}

func NewIntakeService(registry ports.VehicleRegistry, notifier ports.Notifier, clock ports.Clock, logger *zap.Logger) *IntakeService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IntakeService{registry: registry, notifier: notifier, clock: clock, logger: logger}
}

// Submit validates and registers the vehicle, then returns the mission
// selection location carrying the vehicle in its query string.
func (s *IntakeService) Submit(ctx context.Context, cmd RegisterVehicleCommand) (string, error) {
	if err := cmd.Registration.Validate(s.clock.Now()); err != nil {
		return "", err
	}

	if !cmd.Session.IsAuthenticated() {
		s.notifier.Notify(ctx, domain.Toast{
			Title:       "Authentication Error",
			Description: "You must be logged in to add a vehicle.",
			Variant:     domain.ToastDestructive,
		})
		return "", domain.ErrNotAuthenticated
	}

	if err := s.registry.Register(ctx, cmd.Session.Token, cmd.Registration); err != nil {
		s.logger.Warn("register vehicle", zap.Error(err))
		s.notifier.Notify(ctx, domain.Toast{
			Title:       "Submission Failed",
			Description: submissionMessage(err),
			Variant:     domain.ToastDestructive,
		})
		return "", fmt.Errorf("register vehicle: %w", err)
	}

	s.notifier.Notify(ctx, domain.Toast{
		Title:       "Vehicle Added",
		Description: "Your vehicle has been successfully registered.",
		Variant:     domain.ToastDefault,
	})

	return MissionSelectionPath(domain.EncodeQuery(cmd.Registration.Descriptor())), nil
}

func submissionMessage(err error) string {
	var d detailer
	if errors.As(err, &d) && d.Detail() != "" {
		return d.Detail()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}

	return "Could not save your vehicle. Please try again."
}
