package domain

import "strings"

const noMajorIssues = "No major issues detected."

type AnalysisResult struct {
	DetectedIssues []string `json:"detectedIssues" yaml:"detectedIssues"`
}

// HealthScore starts at 100 and loses 15 points per detected issue, never
// going below zero.
func (a AnalysisResult) HealthScore() int {
	score := 100 - 15*len(a.DetectedIssues)
	if score < 0 {
		return 0
	}

	return score
}

type Part struct {
	Name     string  `json:"name" yaml:"name"`
	Platform string  `json:"platform" yaml:"platform"`
	Price    float64 `json:"price" yaml:"price"`
	Rating   float64 `json:"rating" yaml:"rating"`
}

type PartsResult struct {
	Parts []Part `json:"parts" yaml:"parts"`
}

type RoadmapResult struct {
	Roadmap string `json:"roadmap" yaml:"roadmap"`
}

// VisionInput is what the vision flow sees of a vehicle.
type VisionInput struct {
	VehicleType string `json:"vehicleType"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        string `json:"year"`
	Mileage     string `json:"mileage"`
}

func (d VehicleDescriptor) VisionInput() VisionInput {
	return VisionInput{
		VehicleType: d.VehicleType,
		Brand:       d.Brand,
		Model:       d.Model,
		Year:        d.Year,
		Mileage:     d.Mileage,
	}
}

// PartsQuery is shared by the AI parts flow and the backend parts search.
type PartsQuery struct {
	VehicleBrand string   `json:"vehicleBrand"`
	VehicleModel string   `json:"vehicleModel"`
	VehicleYear  string   `json:"vehicleYear"`
	Parts        []string `json:"parts"`
}

type RoadmapInput struct {
	VehicleType    string `json:"vehicleType"`
	DetectedIssues string `json:"detectedIssues"`
}

// RoadmapIssues joins the detected issues and the free-text problem for the
// roadmap prompt.
func RoadmapIssues(detected []string, problem string) string {
	issues := append([]string(nil), detected...)
	if problem != "" {
		issues = append(issues, problem)
	}

	joined := strings.Join(issues, ", ")
	if joined == "" {
		return noMajorIssues
	}

	return joined
}

// Analysis is the combined output of one successful orchestration run.
type Analysis struct {
	Vehicle  VehicleDescriptor `json:"vehicle" yaml:"vehicle"`
	Analysis AnalysisResult    `json:"analysis" yaml:"analysis"`
	Parts    PartsResult       `json:"parts" yaml:"parts"`
	Roadmap  RoadmapResult     `json:"roadmap" yaml:"roadmap"`
}
