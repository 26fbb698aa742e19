package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/spf13/cobra"
)

// vehicleFlags accepts a vehicle either as the query string a web page
// carries (--query) or field by field.
type vehicleFlags struct {
	query       string
	vehicleType string
	brand       string
	model       string
	year        string
	mileage     string
	problem     string
}

func (f *vehicleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.query, "query", "", "Vehicle query string, as printed by `motorsense register`")
	cmd.Flags().StringVar(&f.vehicleType, "type", "", "Vehicle type (car or bike)")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Vehicle brand")
	cmd.Flags().StringVar(&f.model, "model", "", "Vehicle model")
	cmd.Flags().StringVar(&f.year, "year", "", "Model year")
	cmd.Flags().StringVar(&f.mileage, "mileage", "", "Mileage")
	cmd.Flags().StringVar(&f.problem, "problem", "", "Free-text problem description")
}

func (f *vehicleFlags) values() (url.Values, error) {
	if strings.TrimSpace(f.query) != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(f.query), "?"))
		if err != nil {
			return nil, fmt.Errorf("parse --query: %w", err)
		}
		return values, nil
	}

	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(domain.FieldVehicleType, f.vehicleType)
	set(domain.FieldBrand, f.brand)
	set(domain.FieldModel, f.model)
	set(domain.FieldYear, f.year)
	set(domain.FieldMileage, f.mileage)
	set(domain.FieldProblem, f.problem)
	return values, nil
}

// results decodes a vehicle the analysis needs: a problem is required.
func (f *vehicleFlags) results() (domain.VehicleDescriptor, error) {
	values, err := f.values()
	if err != nil {
		return domain.VehicleDescriptor{}, err
	}
	return domain.DecodeResultsQuery(values)
}

func (f *vehicleFlags) vehicle() (domain.VehicleDescriptor, error) {
	values, err := f.values()
	if err != nil {
		return domain.VehicleDescriptor{}, err
	}
	return domain.DecodeVehicleQuery(values)
}
