package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"go.uber.org/zap"
)

// Event names on the results stream.
const (
	eventStep  = "step"
	eventToast = "toast"
	eventDone  = "done"
	eventError = "error"
)

type stepEvent struct {
	Phase    domain.Phase  `json:"phase"`
	Steps    []domain.Step `json:"steps"`
	Progress float64       `json:"progress"`
}

type doneEvent struct {
	HTML string `json:"html"`
}

type errorEvent struct {
	Message string `json:"message"`
}

type dashboardView struct {
	Vehicle     domain.VehicleDescriptor
	Issues      []string
	HealthScore int
	Roadmap     template.HTML
	Parts       []domain.Part
}

// handleResultsStream runs one analysis for the query and reports it as
// server-sent events. The run stops when the browser goes away.
func (s *Server) handleResultsStream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	_ = rc.SetWriteDeadline(time.Time{})
	w.WriteHeader(http.StatusOK)

	send := func(event string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.Error("encode stream event", zap.String("event", event), zap.Error(err))
			return
		}
		_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		if err := rc.Flush(); err != nil {
			s.logger.Debug("flush stream event", zap.String("event", event), zap.Error(err))
		}
	}

	vehicle, err := domain.DecodeResultsQuery(r.URL.Query())
	if err != nil {
		send(eventError, errorEvent{Message: missingInfoDetail})
		return
	}

	ctx := withToastSink(r.Context(), func(toast domain.Toast) {
		send(eventToast, toast)
	})

	run := application.NewAnalysisRun(s.services.Analysis, vehicle)
	state, err := run.Start(ctx, func(state domain.WorkflowState) {
		send(eventStep, stepEvent{Phase: state.Phase, Steps: state.Steps, Progress: state.Progress()})
	})
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("analysis stream abandoned", zap.String("vehicle", vehicle.Title()), zap.Error(ctx.Err()))
			return
		}
		send(eventError, errorEvent{Message: state.Err})
		return
	}

	analysis, ok := state.Result(vehicle)
	if !ok {
		send(eventError, errorEvent{Message: domain.ErrAnalysisIncomplete.Error()})
		return
	}

	html, err := s.renderDashboard(analysis)
	if err != nil {
		s.logger.Error("render dashboard", zap.Error(err))
		send(eventError, errorEvent{Message: "The results could not be displayed."})
		return
	}

	send(eventDone, doneEvent{HTML: html})
}

func (s *Server) renderDashboard(analysis domain.Analysis) (string, error) {
	roadmap, err := s.markdown.render(analysis.Roadmap.Roadmap)
	if err != nil {
		return "", err
	}

	view := dashboardView{
		Vehicle:     analysis.Vehicle,
		Issues:      analysis.Analysis.DetectedIssues,
		HealthScore: analysis.Analysis.HealthScore(),
		Roadmap:     roadmap,
		Parts:       analysis.Parts.Parts,
	}

	var buf bytes.Buffer
	if err := s.pages["results"].ExecuteTemplate(&buf, "dashboard", view); err != nil {
		return "", fmt.Errorf("execute dashboard template: %w", err)
	}

	return buf.String(), nil
}
