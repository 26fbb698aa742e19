package domain

import "errors"

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "processing"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

type StepStatus string

const (
	StepRunning  StepStatus = "running"
	StepComplete StepStatus = "complete"
)

const (
	StepVision  = "Vision Analysis Agent"
	StepParts   = "Parts Discovery Agent"
	StepRoadmap = "Maintenance Planner Agent"
)

// StepOrder is the fixed order the analysis runs its agents in.
var StepOrder = []string{StepVision, StepParts, StepRoadmap}

var stepDescriptions = map[string]string{
	StepVision:  "Inspecting vehicle images for damages and wear.",
	StepParts:   "Finding compatible parts and best prices.",
	StepRoadmap: "Building a step-by-step maintenance roadmap.",
}

func StepDescription(name string) string {
	return stepDescriptions[name]
}

const unknownAnalysisError = "An unknown error occurred during analysis."

var ErrAnalysisIncomplete = errors.New("analysis finished without all results")

type Step struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
}

// WorkflowState is the whole observable state of one analysis run. Values are
// never mutated in place; Reduce always returns a fresh copy.
type WorkflowState struct {
	Phase    Phase           `json:"phase"`
	Steps    []Step          `json:"steps"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Parts    *PartsResult    `json:"parts,omitempty"`
	Roadmap  *RoadmapResult  `json:"roadmap,omitempty"`
	Err      string          `json:"error,omitempty"`
}

func NewWorkflow() WorkflowState {
	return WorkflowState{Phase: PhaseIdle}
}

// RunningStep reports the index of the step currently in flight.
func (s WorkflowState) RunningStep() (int, bool) {
	if s.Phase != PhaseRunning {
		return -1, false
	}
	for i := len(s.Steps) - 1; i >= 0; i-- {
		if s.Steps[i].Status == StepRunning {
			return i, true
		}
	}

	return -1, false
}

// Progress is the share of agents started so far, between 0 and 1.
func (s WorkflowState) Progress() float64 {
	if len(s.Steps) >= len(StepOrder) {
		return 1
	}

	return float64(len(s.Steps)) / float64(len(StepOrder))
}

// StatusOf reports the status of the named step and whether it started.
func (s WorkflowState) StatusOf(name string) (StepStatus, bool) {
	for _, step := range s.Steps {
		if step.Name == name {
			return step.Status, true
		}
	}

	return "", false
}

func (s WorkflowState) Terminal() bool {
	return s.Phase == PhaseSuccess || s.Phase == PhaseError
}

// Result is only available once the run succeeded.
func (s WorkflowState) Result(vehicle VehicleDescriptor) (Analysis, bool) {
	if s.Phase != PhaseSuccess || s.Analysis == nil || s.Parts == nil || s.Roadmap == nil {
		return Analysis{}, false
	}

	return Analysis{
		Vehicle:  vehicle,
		Analysis: *s.Analysis,
		Parts:    *s.Parts,
		Roadmap:  *s.Roadmap,
	}, true
}

type WorkflowEvent interface {
	isWorkflowEvent()
}

type WorkflowStarted struct{}

type StepStarted struct {
	Name string
}

type VisionCompleted struct {
	Result AnalysisResult
}

type PartsCompleted struct {
	Result PartsResult
}

type RoadmapCompleted struct {
	Result RoadmapResult
}

type WorkflowFailed struct {
	Err error
}

type WorkflowFinished struct{}

func (WorkflowStarted) isWorkflowEvent()  {}
func (StepStarted) isWorkflowEvent()      {}
func (VisionCompleted) isWorkflowEvent()  {}
func (PartsCompleted) isWorkflowEvent()   {}
func (RoadmapCompleted) isWorkflowEvent() {}
func (WorkflowFailed) isWorkflowEvent()   {}
func (WorkflowFinished) isWorkflowEvent() {}

// Reduce applies one event. Events that do not fit the current phase are
// ignored, and terminal states absorb everything.
func Reduce(state WorkflowState, event WorkflowEvent) WorkflowState {
	if state.Terminal() {
		return state
	}

	next := state.clone()

	switch e := event.(type) {
	case WorkflowStarted:
		if state.Phase != PhaseIdle {
			return state
		}
		next.Phase = PhaseRunning
	case StepStarted:
		if state.Phase != PhaseRunning {
			return state
		}
		next.Steps = append(next.Steps, Step{Name: e.Name, Status: StepRunning})
	case VisionCompleted:
		if state.Phase != PhaseRunning {
			return state
		}
		result := e.Result
		result.DetectedIssues = append([]string(nil), e.Result.DetectedIssues...)
		next.Analysis = &result
		next.completeStep(StepVision)
	case PartsCompleted:
		if state.Phase != PhaseRunning {
			return state
		}
		result := e.Result
		result.Parts = append([]Part(nil), e.Result.Parts...)
		next.Parts = &result
		next.completeStep(StepParts)
	case RoadmapCompleted:
		if state.Phase != PhaseRunning {
			return state
		}
		result := e.Result
		next.Roadmap = &result
		next.completeStep(StepRoadmap)
	case WorkflowFailed:
		return failed(next, e.Err)
	case WorkflowFinished:
		if state.Phase != PhaseRunning {
			return state
		}
		if next.Analysis == nil || next.Parts == nil || next.Roadmap == nil {
			return failed(next, ErrAnalysisIncomplete)
		}
		next.Phase = PhaseSuccess
	default:
		return state
	}

	return next
}

func failed(state WorkflowState, err error) WorkflowState {
	state.Phase = PhaseError
	state.Analysis = nil
	state.Parts = nil
	state.Roadmap = nil
	state.Err = unknownAnalysisError
	if err != nil && err.Error() != "" {
		state.Err = err.Error()
	}

	return state
}

func (s *WorkflowState) completeStep(name string) {
	for i := range s.Steps {
		if s.Steps[i].Name == name {
			s.Steps[i].Status = StepComplete
		}
	}
}

func (s WorkflowState) clone() WorkflowState {
	out := s
	out.Steps = append([]Step(nil), s.Steps...)
	return out
}
