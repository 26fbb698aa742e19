package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartsServiceRejectsIncompleteQuery(t *testing.T) {
	tests := []struct {
		name  string
		query domain.PartsQuery
	}{
		{name: "no parts", query: domain.PartsQuery{VehicleBrand: "Toyota", VehicleModel: "Corolla", VehicleYear: "2018"}},
		{name: "blank parts", query: domain.PartsQuery{VehicleBrand: "Toyota", VehicleModel: "Corolla", VehicleYear: "2018", Parts: []string{" ", ""}}},
		{name: "no brand", query: domain.PartsQuery{VehicleModel: "Corolla", VehicleYear: "2018", Parts: []string{"rotor"}}},
		{name: "no year", query: domain.PartsQuery{VehicleBrand: "Toyota", VehicleModel: "Corolla", Parts: []string{"rotor"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mocks.NewMockPartsCatalog(t)
			_, err := NewPartsService(catalog).Find(context.Background(), tt.query)
			assert.ErrorIs(t, err, ErrEmptyPartsQuery)
		})
	}
}

func TestPartsServiceTrimsPartNames(t *testing.T) {
	catalog := mocks.NewMockPartsCatalog(t)
	want := domain.PartsResult{Parts: []domain.Part{{Name: "Rotor", Platform: "RockAuto", Price: 54, Rating: 4.2}}}
	catalog.EXPECT().FindParts(mockAnyContext(), domain.PartsQuery{
		VehicleBrand: "Toyota",
		VehicleModel: "Corolla",
		VehicleYear:  "2018",
		Parts:        []string{"rotor", "brake pads"},
	}).Return(want, nil)

	got, err := NewPartsService(catalog).Find(context.Background(), domain.PartsQuery{
		VehicleBrand: "Toyota",
		VehicleModel: "Corolla",
		VehicleYear:  "2018",
		Parts:        []string{" rotor", "", "brake pads "},
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPartsServiceWrapsCatalogError(t *testing.T) {
	catalog := mocks.NewMockPartsCatalog(t)
	boom := errors.New("catalog offline")
	catalog.EXPECT().FindParts(mockAnyContext(), mockAnyContext()).Return(domain.PartsResult{}, boom)

	_, err := NewPartsService(catalog).Find(context.Background(), domain.PartsQuery{
		VehicleBrand: "Toyota", VehicleModel: "Corolla", VehicleYear: "2018", Parts: []string{"rotor"},
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "find parts")
}
