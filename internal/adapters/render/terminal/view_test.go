package terminal

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDashboard(t *testing.T) {
	output, err := RenderDashboard(domain.Analysis{
		Vehicle:  domain.VehicleDescriptor{VehicleType: "car", Brand: "Toyota", Model: "Corolla", Year: "2018", Mileage: "65000"},
		Analysis: domain.AnalysisResult{DetectedIssues: []string{"worn brake pads", "low tire tread"}},
		Parts:    domain.PartsResult{Parts: []domain.Part{{Name: "Ceramic pads", Platform: "RockAuto", Price: 39.5, Rating: 4.4}}},
		Roadmap:  domain.RoadmapResult{Roadmap: "## Immediate\n\n1. Replace the brake pads"},
	}, Options{Plain: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Toyota Corolla Analysis")
	assert.Contains(t, output, "2018 | 65000 miles")
	assert.Contains(t, output, "70/100")
	assert.Contains(t, output, "worn brake pads")
	assert.Contains(t, output, "Maintenance & Upgrade Roadmap")
	assert.Contains(t, output, "Replace the brake pads")
	assert.Contains(t, output, "Ceramic pads")
	assert.Contains(t, output, "RockAuto - $39.50")
	assert.Contains(t, output, "4.4")
}

func TestRenderDashboardWithoutIssues(t *testing.T) {
	output, err := RenderDashboard(domain.Analysis{
		Vehicle: domain.VehicleDescriptor{Brand: "Honda", Model: "CB500"},
	}, Options{Plain: true})

	require.NoError(t, err)
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, noIssuesDetected)
	assert.Contains(t, output, "No parts found.")
}

func TestRenderRecommendation(t *testing.T) {
	output, err := RenderRecommendation(domain.Recommendation{
		CurrentScore: 80,
		BestScore:    90,
		NewConfig:    domain.EcuConfig{"boost_pressure": 14, "fuel_air_ratio": 13.5},
		Deltas:       domain.EcuConfig{"boost_pressure": 2, "fuel_air_ratio": -0.5, "throttle_response_rate": 0},
		Rationale:    "Raise boost, lean the mixture slightly.",
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Optimization Results")
	assert.Contains(t, output, "80.00")
	assert.Contains(t, output, "90.00")
	assert.Contains(t, output, "(+12.50%)")
	assert.Contains(t, output, "AI Rationale")
	assert.Contains(t, output, "Recommended Changes:")
	assert.Contains(t, output, "Boost Pressure (psi)")
	assert.Contains(t, output, "12.00 → 14.00")
	assert.Contains(t, output, "↑ 2.00")
	assert.Contains(t, output, "14.00 → 13.50")
	assert.Contains(t, output, "↓ 0.50")
	assert.NotContains(t, output, "THROTTLE")
	assert.NotContains(t, output, "Throttle Response Rate")
}

func TestRenderRecommendationRegression(t *testing.T) {
	output, err := RenderRecommendation(domain.Recommendation{CurrentScore: 50, BestScore: 40})

	require.NoError(t, err)
	assert.Contains(t, output, "(-20.00%)")
	assert.Contains(t, output, "No parameter changes recommended.")
	assert.NotContains(t, output, "AI Rationale")
}

func TestRenderTuning(t *testing.T) {
	schema := domain.EcuSchema{
		TunableParams: []string{"boost_pressure"},
		Bounds:        map[string]domain.Bounds{"boost_pressure": {0, 20}},
	}

	output, err := RenderTuning(application.TuningView{
		Schema: &schema,
		Params: domain.EcuConfig{"boost_pressure": 10},
		Goal:   domain.GoalMaximize,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "goal: maximize")
	assert.Contains(t, output, "Boost Pressure (psi)")
	assert.Contains(t, output, "[============------------]")
	assert.Contains(t, output, "10.00")
	assert.Contains(t, output, "[0, 20]")
}

func TestRenderTuningWithoutSchema(t *testing.T) {
	output, err := RenderTuning(application.TuningView{Error: "Failed to load ECU schema. The tuning module is unavailable."})

	require.NoError(t, err)
	assert.Contains(t, output, "The tuning module is unavailable.")
}

func TestRenderIdentification(t *testing.T) {
	output, err := RenderIdentification(domain.PartIdentification{
		System:       "brakes",
		Part:         "brake_caliper",
		Confidence:   0.9312,
		Purpose:      "Clamps the rotor.",
		Alternatives: []domain.PartAlternative{{Part: "master_cylinder", Confidence: 0.04}},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Identification Complete")
	assert.Contains(t, output, "93.12%")
	assert.Contains(t, output, "brake caliper")
	assert.Contains(t, output, "brakes")
	assert.Contains(t, output, "Clamps the rotor.")
	assert.Contains(t, output, "master cylinder")
	assert.Contains(t, output, "Confidence: 4.0%")
}

func TestRenderTranscript(t *testing.T) {
	output, err := RenderTranscript(application.ChatView{
		Vehicle: domain.VehicleDescriptor{Brand: "Toyota", Model: "Corolla", Year: "2018"},
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: "grinding when braking"},
			{Role: domain.RoleAssistant, Content: "Possible issue detected: brake pad wear"},
		},
		Replying: true,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "2018 Toyota Corolla")
	assert.Contains(t, output, "You")
	assert.Contains(t, output, "grinding when braking")
	assert.Contains(t, output, "Assistant")
	assert.Contains(t, output, "Thinking...")
}

func TestRenderMissingInfoListsFields(t *testing.T) {
	output, err := RenderMissingInfo(&domain.MissingFieldsError{Fields: []string{domain.FieldProblem}})

	require.NoError(t, err)
	assert.Contains(t, output, "Missing Information")
	assert.Contains(t, output, missingInfoDetail)
	assert.Contains(t, output, "missing: problem")
	assert.Contains(t, output, "Start Over")
}

func TestRenderFailure(t *testing.T) {
	output, err := RenderFailure("quota exceeded")

	require.NoError(t, err)
	assert.Contains(t, output, "Analysis Failed")
	assert.Contains(t, output, "quota exceeded")
	assert.Contains(t, output, "Try Again")
}

func TestStepsViewShowsStartedAgentsOnly(t *testing.T) {
	state := domain.Reduce(domain.Reduce(domain.NewWorkflow(), domain.WorkflowStarted{}), domain.StepStarted{Name: domain.StepVision})

	output := stepsView(state, "", newStyles())

	assert.Contains(t, output, "AI Analysis in Progress...")
	assert.Contains(t, output, "1/3 agents")
	assert.Contains(t, output, domain.StepVision)
	assert.Contains(t, output, domain.StepParts)
	assert.NotContains(t, output, domain.StepRoadmap)
}

func TestRenderProgressBar(t *testing.T) {
	s := newStyles()

	testCases := []struct {
		percent float64
		want    string
	}{
		{percent: 0, want: "[----]"},
		{percent: 50, want: "[==--]"},
		{percent: 150, want: "[====]"},
		{percent: -10, want: "[----]"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, renderProgressBar(tc.percent, 4, s))
	}
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "240", string(interpolateColor(0, 0, 100)))
	assert.Equal(t, "255", string(interpolateColor(100, 0, 100)))
	assert.Equal(t, "255", string(interpolateColor(5, 5, 5)))
}

func TestFormatToast(t *testing.T) {
	output := FormatToast(domain.Toast{Title: "Vehicle Added", Description: "Your vehicle has been successfully registered."})
	assert.Contains(t, output, "Vehicle Added")
	assert.Contains(t, output, "\n   Your vehicle has been successfully registered.")

	destructive := FormatToast(domain.Toast{Title: "Submission Failed", Variant: domain.ToastDestructive})
	assert.Contains(t, destructive, "✗")
	assert.Contains(t, destructive, "Submission Failed")
}

func TestToastPrinterWritesEachToast(t *testing.T) {
	var out bytes.Buffer
	printer := NewToastPrinter(&out)

	printer.Notify(context.Background(), domain.Toast{Title: "Roadmap Generated"})
	printer.Notify(context.Background(), domain.Toast{Title: "Optimization Failed", Variant: domain.ToastDestructive})

	assert.Contains(t, out.String(), "Roadmap Generated")
	assert.Contains(t, out.String(), "Optimization Failed")
}

func TestRunProgressReturnsRunOutcome(t *testing.T) {
	var out bytes.Buffer
	want := errors.New("vision failed")

	state, err := RunProgress(context.Background(), &out, func(ctx context.Context, observe application.Observer, notifier ports.Notifier) (domain.WorkflowState, error) {
		s := domain.Reduce(domain.NewWorkflow(), domain.WorkflowStarted{})
		observe(s)
		s = domain.Reduce(s, domain.StepStarted{Name: domain.StepVision})
		observe(s)
		notifier.Notify(ctx, domain.Toast{Title: "Analysis Failed", Variant: domain.ToastDestructive})
		s = domain.Reduce(s, domain.WorkflowFailed{Err: want})
		observe(s)
		return s, want
	})

	require.ErrorIs(t, err, want)
	assert.Equal(t, domain.PhaseError, state.Phase)
	assert.Equal(t, "vision failed", state.Err)
	assert.Contains(t, out.String(), domain.StepVision)
}
