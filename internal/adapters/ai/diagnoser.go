package ai

import (
	"context"
	"fmt"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

const DefaultTopK = 3

// Diagnoser answers a chat turn with the best probable cause from the
// diagnostics backend. No model is involved.
type Diagnoser struct {
	diagnostics ports.Diagnostics
	topK        int
	logger      *zap.Logger
}

var _ ports.Diagnoser = (*Diagnoser)(nil)

func NewDiagnoser(diagnostics ports.Diagnostics, topK int, logger *zap.Logger) *Diagnoser {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnoser{diagnostics: diagnostics, topK: topK, logger: logger}
}

func (d *Diagnoser) Diagnose(ctx context.Context, input domain.DiagnosisInput) (string, error) {
	results, err := d.diagnostics.ProbableCause(ctx, input.VehicleType, input.ProblemDescription, d.topK)
	if err != nil {
		return "", fmt.Errorf("diagnose: %w", err)
	}

	d.logger.Debug("diagnosis received", zap.Int("results", len(results)), zap.Int("history", len(input.ChatHistory)))
	return domain.FormatDiagnosisReply(results), nil
}
