package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"

	MinVehicleYear = 1900
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeBike:
		return true
	default:
		return false
	}
}

// VehicleDescriptor is the vehicle as it travels between pages. Year and
// Mileage stay in their decimal string form.
type VehicleDescriptor struct {
	VehicleType string `json:"vehicleType"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        string `json:"year"`
	Mileage     string `json:"mileage"`
	Problem     string `json:"problem,omitempty"`
}

func (d VehicleDescriptor) Title() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", d.Year, d.Brand, d.Model))
}

// Registration is the intake form payload.
type Registration struct {
	VehicleType VehicleType
	Brand       string
	Model       string
	Year        int
	Mileage     int
}

type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}

	return "invalid vehicle: " + strings.Join(parts, "; ")
}

func (r Registration) Validate(now time.Time) error {
	errs := ValidationErrors{}

	if !r.VehicleType.Valid() {
		errs[FieldVehicleType] = "You need to select a vehicle type."
	}
	if utf8.RuneCountInString(r.Brand) < 2 {
		errs[FieldBrand] = "Brand must be at least 2 characters."
	}
	if utf8.RuneCountInString(r.Model) < 1 {
		errs[FieldModel] = "Model is required."
	}
	if r.Year < MinVehicleYear {
		errs[FieldYear] = "Year must be after 1900."
	} else if r.Year > now.Year()+1 {
		errs[FieldYear] = "Year cannot be in the future."
	}
	if r.Mileage < 0 {
		errs[FieldMileage] = "Mileage must be a positive number."
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r Registration) Descriptor() VehicleDescriptor {
	return VehicleDescriptor{
		VehicleType: string(r.VehicleType),
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        strconv.Itoa(r.Year),
		Mileage:     strconv.Itoa(r.Mileage),
	}
}

// ParseRegistration coerces raw form values the way a number input does:
// blank or non-numeric year and mileage become field errors.
func ParseRegistration(vehicleType, brand, model, year, mileage string) (Registration, ValidationErrors) {
	errs := ValidationErrors{}
	reg := Registration{
		VehicleType: VehicleType(strings.TrimSpace(vehicleType)),
		Brand:       brand,
		Model:       model,
	}

	parsedYear, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		errs[FieldYear] = "Year must be after 1900."
	} else {
		reg.Year = parsedYear
	}

	parsedMileage, err := strconv.Atoi(strings.TrimSpace(mileage))
	if err != nil {
		errs[FieldMileage] = "Mileage must be a positive number."
	} else {
		reg.Mileage = parsedMileage
	}

	return reg, errs
}
