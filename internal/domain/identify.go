package domain

import "strings"

type PartAlternative struct {
	Part       string  `json:"part" yaml:"part"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// PartIdentification is the backend's answer for an uploaded part photo.
type PartIdentification struct {
	VehicleType  string            `json:"vehicle_type" yaml:"vehicle_type"`
	System       string            `json:"system" yaml:"system"`
	Part         string            `json:"part" yaml:"part"`
	Confidence   float64           `json:"confidence" yaml:"confidence"`
	Purpose      string            `json:"purpose" yaml:"purpose"`
	Alternatives []PartAlternative `json:"alternatives" yaml:"alternatives"`
	Method       string            `json:"method" yaml:"method"`
}

// HumanizeLabel turns a snake_case backend label into words.
func HumanizeLabel(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}
