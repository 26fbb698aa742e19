package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names shared by every page. They are a wire contract and
// must not change.
const (
	FieldVehicleType = "vehicleType"
	FieldBrand       = "brand"
	FieldModel       = "model"
	FieldYear        = "year"
	FieldMileage     = "mileage"
	FieldProblem     = "problem"
	FieldPriority    = "priority"
	FieldMission     = "mission"
)

var vehicleFields = []string{FieldVehicleType, FieldBrand, FieldModel, FieldYear, FieldMileage}

type Mission string

const (
	MissionRepair Mission = "repair"
	MissionTune   Mission = "tune"
)

type Priority string

const PriorityCritical Priority = "critical"

// MissingFieldsError lists the query keys a page needed but did not get.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingVehicleInfo.Error(), strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingVehicleInfo
}

// EncodeQuery flattens a descriptor into query parameters. Problem is only
// written when non-empty.
func EncodeQuery(d VehicleDescriptor) url.Values {
	values := url.Values{}
	values.Set(FieldVehicleType, d.VehicleType)
	values.Set(FieldBrand, d.Brand)
	values.Set(FieldModel, d.Model)
	values.Set(FieldYear, d.Year)
	values.Set(FieldMileage, d.Mileage)
	if d.Problem != "" {
		values.Set(FieldProblem, d.Problem)
	}

	return values
}

// DecodeResultsQuery is the results page contract: all five vehicle keys and
// the problem key must be present, though any of them may be empty.
func DecodeResultsQuery(values url.Values) (VehicleDescriptor, error) {
	required := append(append([]string(nil), vehicleFields...), FieldProblem)

	var missing []string
	for _, key := range required {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return VehicleDescriptor{}, &MissingFieldsError{Fields: missing}
	}

	return descriptorFrom(values), nil
}

// DecodeVehicleQuery requires the five vehicle keys to be present and
// non-empty. Problem is optional.
func DecodeVehicleQuery(values url.Values) (VehicleDescriptor, error) {
	var missing []string
	for _, key := range vehicleFields {
		if strings.TrimSpace(values.Get(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return VehicleDescriptor{}, &MissingFieldsError{Fields: missing}
	}

	return descriptorFrom(values), nil
}

func descriptorFrom(values url.Values) VehicleDescriptor {
	return VehicleDescriptor{
		VehicleType: values.Get(FieldVehicleType),
		Brand:       values.Get(FieldBrand),
		Model:       values.Get(FieldModel),
		Year:        values.Get(FieldYear),
		Mileage:     values.Get(FieldMileage),
		Problem:     values.Get(FieldProblem),
	}
}

// WithParam copies values and sets key. The input is left untouched so a
// page can build several outgoing links from one incoming query.
func WithParam(values url.Values, key, value string) url.Values {
	out := make(url.Values, len(values)+1)
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	out.Set(key, value)

	return out
}

func IsMissingVehicleInfo(err error) bool {
	return errors.Is(err, ErrMissingVehicleInfo)
}
