package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
)

var ErrEmptyPartsQuery = errors.New("brand, model, year and at least one part are required")

// PartsService is the direct catalog lookup behind the parts command. The
// analysis flow goes through the AI discoverer instead.
type PartsService struct {
	catalog ports.PartsCatalog
}

func NewPartsService(catalog ports.PartsCatalog) *PartsService {
	return &PartsService{catalog: catalog}
}

func (s *PartsService) Find(ctx context.Context, query domain.PartsQuery) (domain.PartsResult, error) {
	query.Parts = compactStrings(query.Parts)
	if strings.TrimSpace(query.VehicleBrand) == "" || strings.TrimSpace(query.VehicleModel) == "" ||
		strings.TrimSpace(query.VehicleYear) == "" || len(query.Parts) == 0 {
		return domain.PartsResult{}, ErrEmptyPartsQuery
	}

	result, err := s.catalog.FindParts(ctx, query)
	if err != nil {
		return domain.PartsResult{}, fmt.Errorf("find parts: %w", err)
	}

	return result, nil
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
