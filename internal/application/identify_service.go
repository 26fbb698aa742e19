package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

const identificationFailedMessage = "An unknown error occurred during identification."

type IdentifyService struct {
	identifier ports.PartIdentifier
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewIdentifyService(identifier ports.PartIdentifier, notifier ports.Notifier, logger *zap.Logger) *IdentifyService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IdentifyService{identifier: identifier, notifier: notifier, logger: logger}
}

func (s *IdentifyService) Identify(ctx context.Context, cmd IdentifyCommand) (domain.PartIdentification, error) {
	if len(cmd.Image) == 0 {
		s.notifier.Notify(ctx, domain.Toast{
			Title:       "Missing Image",
			Description: "Please upload an image of the part.",
			Variant:     domain.ToastDestructive,
		})
		return domain.PartIdentification{}, domain.ErrMissingImage
	}

	vehicleType := domain.VehicleType(strings.ToLower(strings.TrimSpace(cmd.VehicleType)))
	if !vehicleType.Valid() {
		s.notifier.Notify(ctx, domain.Toast{
			Title:       "Missing Vehicle Type",
			Description: "Please select a vehicle type first.",
			Variant:     domain.ToastDestructive,
		})
		return domain.PartIdentification{}, domain.ErrMissingVehicleType
	}

	filename := cmd.Filename
	if filename == "" {
		filename = "part.jpg"
	}

	result, err := s.identifier.IdentifyPart(ctx, string(vehicleType), filename, cmd.ContentType, bytes.NewReader(cmd.Image))
	if err != nil {
		s.logger.Warn("identify part", zap.String("vehicle_type", string(vehicleType)), zap.Error(err))
		message := err.Error()
		if message == "" {
			message = identificationFailedMessage
		}
		s.notifier.Notify(ctx, domain.Toast{
			Title:       "Identification Failed",
			Description: message,
			Variant:     domain.ToastDestructive,
		})
		return domain.PartIdentification{}, fmt.Errorf("identify part: %w", err)
	}

	return result, nil
}
