package terminal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth          = 24
	missingInfoDetail = "Vehicle data is missing. Please start the analysis process from the beginning."
	noIssuesDetected  = "No significant issues detected from the provided information."
)

// RenderDashboard draws the results of a successful analysis. The roadmap is
// rendered as markdown.
func RenderDashboard(analysis domain.Analysis, opts Options) (string, error) {
	roadmap, err := renderMarkdown(analysis.Roadmap.Roadmap, opts)
	if err != nil {
		return "", err
	}

	return render(func(s styles) string {
		return dashboardView(analysis, roadmap, s)
	})
}

func RenderRecommendation(rec domain.Recommendation) (string, error) {
	return render(func(s styles) string {
		return recommendationView(rec, s)
	})
}

// RenderTuning draws the current parameters against their bounds, followed by
// the last recommendation when there is one.
func RenderTuning(view application.TuningView) (string, error) {
	return render(func(s styles) string {
		return tuningView(view, s)
	})
}

func RenderIdentification(result domain.PartIdentification) (string, error) {
	return render(func(s styles) string {
		return identificationView(result, s)
	})
}

func RenderParts(result domain.PartsResult) (string, error) {
	return render(func(s styles) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Recommended Spare Parts"),
			partsView(result.Parts, s),
		)
	})
}

func RenderTranscript(view application.ChatView) (string, error) {
	return render(func(s styles) string {
		return transcriptView(view, s)
	})
}

// RenderMissingInfo is shown instead of a page whose query lacked vehicle data.
func RenderMissingInfo(err error) (string, error) {
	return render(func(s styles) string {
		return alertView("Missing Information", missingInfoDetail, err, "Start Over", s)
	})
}

func RenderFailure(message string) (string, error) {
	return render(func(s styles) string {
		return alertView("Analysis Failed", message, nil, "Try Again", s)
	})
}

func dashboardView(a domain.Analysis, roadmap string, s styles) string {
	lines := []string{
		s.title.Render(strings.TrimSpace(fmt.Sprintf("%s %s Analysis", a.Vehicle.Brand, a.Vehicle.Model))),
		s.header.Render(fmt.Sprintf("%s | %s miles", a.Vehicle.Year, a.Vehicle.Mileage)),
	}

	score := a.Analysis.HealthScore()
	health := lipgloss.JoinHorizontal(lipgloss.Top,
		renderProgressBar(float64(score), barWidth, s),
		" ",
		lipgloss.NewStyle().Bold(true).Foreground(healthColor(score)).Render(fmt.Sprintf("%d/100", score)),
	)
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.heading.Render("Vehicle Health Summary"),
		health,
	)))

	issues := []string{s.heading.Render("Detected Issues")}
	if len(a.Analysis.DetectedIssues) == 0 {
		issues = append(issues, s.good.Render("✓ ")+s.detail.Render(noIssuesDetected))
	}
	for _, issue := range a.Analysis.DetectedIssues {
		issues = append(issues, s.warning.Render("! ")+s.detail.Render(issue))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, issues...)))

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.heading.Render("Maintenance & Upgrade Roadmap"),
		strings.TrimRight(roadmap, "\n"),
	)))

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.heading.Render("Recommended Spare Parts"),
		partsView(a.Parts.Parts, s),
	)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func partsView(parts []domain.Part, s styles) string {
	if len(parts) == 0 {
		return s.empty.Render("No parts found.")
	}

	width := 0
	for _, part := range parts {
		width = max(width, lipgloss.Width(part.Name))
	}

	rows := make([]string, 0, len(parts))
	for _, part := range parts {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			s.value.Render(fmt.Sprintf("%-*s", width, part.Name)),
			"  ",
			s.muted.Render(part.Platform),
			" - ",
			s.detail.Render(formatPrice(part.Price)),
			"  ",
			s.warning.Render("★ "),
			s.detail.Render(fmt.Sprintf("%.1f", part.Rating)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatPrice(price float64) string {
	if price == math.Trunc(price) {
		return fmt.Sprintf("$%.0f", price)
	}

	return fmt.Sprintf("$%.2f", price)
}

func recommendationView(rec domain.Recommendation, s styles) string {
	improvement := rec.Improvement()
	scoreStyle := s.good
	sign := "+"
	if improvement < 0 {
		scoreStyle = s.bad
		sign = ""
	}

	lines := []string{
		s.title.Render("Optimization Results"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render("Original Score:  "),
			s.value.Render(fmt.Sprintf("%.2f", rec.CurrentScore)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			scoreStyle.Render("Optimized Score: "),
			s.value.Render(fmt.Sprintf("%.2f", rec.BestScore)),
			" ",
			scoreStyle.Render(fmt.Sprintf("(%s%.2f%%)", sign, improvement)),
		),
	}

	if rationale := strings.TrimSpace(rec.Rationale); rationale != "" {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.heading.Render("AI Rationale"),
			s.detail.Render(rationale),
		)))
	}

	changes := rec.ParamChanges()
	rows := []string{s.heading.Render("Recommended Changes:")}
	if len(changes) == 0 {
		rows = append(rows, s.empty.Render("No parameter changes recommended."))
	}

	width := 0
	for _, change := range changes {
		width = max(width, lipgloss.Width(change.Label))
	}
	for _, change := range changes {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render(fmt.Sprintf("%-*s", width, change.Label)),
			"  ",
			s.muted.Render(fmt.Sprintf("%.2f", change.Original)),
			s.muted.Render(" → "),
			s.highlight.Render(fmt.Sprintf("%.2f", change.Recommended)),
			"  ",
			changeStyle(change, s).Render(fmt.Sprintf("%s %.2f", change.Arrow(), change.Magnitude)),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func changeStyle(change domain.ParamChange, s styles) lipgloss.Style {
	if change.Increase {
		return s.good
	}

	return s.warning
}

func tuningView(view application.TuningView, s styles) string {
	lines := []string{s.title.Render("ECU Tuning")}

	if view.Schema == nil {
		message := view.Error
		if message == "" {
			message = domain.ErrSchemaUnavailable.Error()
		}
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.bad.Render(message))...)
	}

	lines = append(lines, s.header.Render("goal: "+string(view.Goal)))

	width := 0
	for _, param := range view.Schema.TunableParams {
		width = max(width, lipgloss.Width(domain.ParamLabel(param)))
	}

	rows := make([]string, 0, len(view.Schema.TunableParams))
	for _, param := range view.Schema.TunableParams {
		bounds := view.Schema.Bounds[param]
		value := view.Params[param]
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render(fmt.Sprintf("%-*s", width, domain.ParamLabel(param))),
			" ",
			renderProgressBar(positionPercent(value, bounds), barWidth, s),
			" ",
			s.value.Render(fmt.Sprintf("%.2f", value)),
			s.muted.Render(fmt.Sprintf(" [%g, %g]", bounds.Min(), bounds.Max())),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	if view.Error != "" {
		lines = append(lines, s.section.Render(s.bad.Render(view.Error)))
	}
	if view.Result != nil {
		lines = append(lines, s.section.Render(recommendationView(*view.Result, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func positionPercent(value float64, bounds domain.Bounds) float64 {
	span := bounds.Max() - bounds.Min()
	if span <= 0 {
		return 100
	}

	return clampPercent((value - bounds.Min()) / span * 100)
}

func identificationView(result domain.PartIdentification, s styles) string {
	confidence := result.Confidence * 100
	lines := []string{
		s.title.Render("Identification Complete"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render("Confidence Score: "),
			renderProgressBar(confidence, barWidth, s),
			" ",
			lipgloss.NewStyle().Bold(true).Foreground(interpolateColor(confidence, 0, 100)).Render(fmt.Sprintf("%.2f%%", confidence)),
		),
		s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.label.Render("Identified Part: ")+s.value.Render(domain.HumanizeLabel(result.Part)),
			s.label.Render("Vehicle System:  ")+s.detail.Render(result.System),
		)),
	}

	if purpose := strings.TrimSpace(result.Purpose); purpose != "" {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.heading.Render("Purpose:"),
			s.detail.Render(purpose),
		)))
	}

	if len(result.Alternatives) > 0 {
		rows := []string{s.heading.Render("Possible Alternatives:")}
		for _, alt := range result.Alternatives {
			rows = append(rows, fmt.Sprintf("%s  %s",
				s.detail.Render(domain.HumanizeLabel(alt.Part)),
				s.muted.Render(fmt.Sprintf("Confidence: %.1f%%", alt.Confidence*100)),
			))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func transcriptView(view application.ChatView, s styles) string {
	lines := []string{
		s.title.Render("Critical Diagnosis"),
		s.header.Render(view.Vehicle.Title()),
	}

	if len(view.Messages) == 0 {
		lines = append(lines, s.empty.Render("Describe the problem to start the diagnosis."))
	}
	for _, msg := range view.Messages {
		lines = append(lines, s.section.Render(messageView(msg, s)))
	}
	if view.Replying {
		lines = append(lines, s.section.Render(s.muted.Render("Thinking...")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func messageView(msg domain.ChatMessage, s styles) string {
	speaker := s.user.Render("You")
	if msg.Role == domain.RoleAssistant {
		speaker = s.assistant.Render("Assistant")
	}

	return lipgloss.JoinVertical(lipgloss.Left, speaker, s.detail.Render(msg.Content))
}

func alertView(title, detail string, cause error, action string, s styles) string {
	lines := []string{
		s.bad.Render(title),
		s.detail.Render(detail),
	}

	var missing *domain.MissingFieldsError
	if errors.As(cause, &missing) {
		lines = append(lines, s.muted.Render("missing: "+strings.Join(missing.Fields, ", ")))
	}

	lines = append(lines, s.section.Render(s.heading.Render(action)+s.muted.Render(": motorsense register")))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// stepsView draws the agent cards of a running analysis.
func stepsView(state domain.WorkflowState, spinner string, s styles) string {
	lines := []string{
		s.title.Render("AI Analysis in Progress..."),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderProgressBar(state.Progress()*100, barWidth, s),
			" ",
			s.muted.Render(fmt.Sprintf("%d/%d agents", len(state.Steps), len(domain.StepOrder))),
		),
	}

	for i, name := range domain.StepOrder {
		if len(state.Steps) < i {
			break
		}

		marker := s.empty.Render("·")
		status, started := state.StatusOf(name)
		switch {
		case started && status == domain.StepComplete:
			marker = s.stepDone.Render("✓")
		case started && spinner != "":
			marker = spinner
		case started:
			marker = s.stepActive.Render("…")
		}

		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			marker+" "+s.value.Render(name),
			"  "+s.muted.Render(domain.StepDescription(name)),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func healthColor(score int) lipgloss.Color {
	switch {
	case score > 70:
		return lipgloss.Color("78")
	case score > 40:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("203")
	}
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, 240 at min to 255 at max.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
