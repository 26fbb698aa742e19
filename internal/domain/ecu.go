package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Goal string

const (
	GoalMaximize Goal = "maximize"
	GoalMinimize Goal = "minimize"
)

func (g Goal) Valid() bool {
	return g == GoalMaximize || g == GoalMinimize
}

// Vehicle state inputs accepted next to the tunable parameters.
const (
	StateEngineRPM  = "engine_rpm"
	StateEngineLoad = "engine_load"
	StateIntakeTemp = "intake_air_temperature"
)

var VehicleStateKeys = []string{StateEngineRPM, StateEngineLoad, StateIntakeTemp}

var paramLabels = map[string]string{
	"fuel_air_ratio":          "Fuel/Air Ratio",
	"ignition_timing_advance": "Ignition Timing Advance (°)",
	"throttle_response_rate":  "Throttle Response Rate",
	"boost_pressure":          "Boost Pressure (psi)",
}

// ParamLabel returns the display label for a tunable parameter.
func ParamLabel(key string) string {
	if label, ok := paramLabels[key]; ok {
		return label
	}

	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

type Bounds [2]float64

func (b Bounds) Min() float64 { return b[0] }
func (b Bounds) Max() float64 { return b[1] }

func (b Bounds) Clamp(v float64) float64 {
	return math.Min(math.Max(v, b[0]), b[1])
}

type EcuSchema struct {
	TunableParams []string           `json:"tunable_params"`
	Bounds        map[string]Bounds  `json:"bounds"`
	StepSizes     map[string]float64 `json:"step_sizes"`
}

func (s EcuSchema) Validate() error {
	if len(s.TunableParams) == 0 {
		return errors.New("ecu schema has no tunable params")
	}
	for _, param := range s.TunableParams {
		bounds, ok := s.Bounds[param]
		if !ok {
			return fmt.Errorf("ecu schema: param %q has no bounds", param)
		}
		if bounds.Min() > bounds.Max() {
			return fmt.Errorf("ecu schema: param %q has min %v above max %v", param, bounds.Min(), bounds.Max())
		}
	}

	return nil
}

// DefaultConfig seeds every tunable parameter at the midpoint of its bounds,
// rounded to the two decimals the sliders display.
func DefaultConfig(schema EcuSchema) EcuConfig {
	config := make(EcuConfig, len(schema.TunableParams))
	for _, param := range schema.TunableParams {
		bounds := schema.Bounds[param]
		config[param] = math.Round((bounds.Min()+bounds.Max())/2*100) / 100
	}

	return config
}

type EcuConfig map[string]float64

func (c EcuConfig) Clone() EcuConfig {
	out := make(EcuConfig, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

func (c EcuConfig) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// MergeConfig overlays params on the vehicle state. Blank state entries are
// dropped; a non-numeric one is an error.
func MergeConfig(vehicleState map[string]string, params EcuConfig) (EcuConfig, error) {
	merged := make(EcuConfig, len(vehicleState)+len(params))
	for key, raw := range vehicleState {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		merged[key] = value
	}
	for key, value := range params {
		merged[key] = value
	}

	return merged, nil
}

type Recommendation struct {
	CurrentScore float64   `json:"current_score" yaml:"current_score"`
	BestScore    float64   `json:"best_score" yaml:"best_score"`
	NewConfig    EcuConfig `json:"new_config" yaml:"new_config"`
	Deltas       EcuConfig `json:"deltas" yaml:"deltas"`
	Rationale    string    `json:"rationale" yaml:"rationale"`
	Direction    Goal      `json:"direction" yaml:"direction"`
}

// Improvement is the relative score gain in percent. A zero current score has
// no meaningful baseline and yields zero.
func (r Recommendation) Improvement() float64 {
	if r.CurrentScore == 0 {
		return 0
	}

	return (r.BestScore - r.CurrentScore) / math.Abs(r.CurrentScore) * 100
}

type ParamChange struct {
	Param       string
	Label       string
	Original    float64
	Recommended float64
	Increase    bool
	Magnitude   float64
}

func (c ParamChange) Arrow() string {
	if c.Increase {
		return "↑"
	}

	return "↓"
}

// ParamChanges lists the non-zero deltas in key order.
func (r Recommendation) ParamChanges() []ParamChange {
	changes := make([]ParamChange, 0, len(r.Deltas))
	for _, key := range r.Deltas.Keys() {
		delta := r.Deltas[key]
		if delta == 0 {
			continue
		}
		recommended := r.NewConfig[key]
		changes = append(changes, ParamChange{
			Param:       key,
			Label:       ParamLabel(key),
			Original:    recommended - delta,
			Recommended: recommended,
			Increase:    delta > 0,
			Magnitude:   math.Abs(delta),
		})
	}

	return changes
}
