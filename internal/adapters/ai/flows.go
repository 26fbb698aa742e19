// Package ai runs the generative flows behind the analysis workflow: vehicle
// analysis, parts discovery and roadmap generation, plus the diagnostics
// wrapper used by the critical chat.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/motorsense/internal/adapters/llm"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

const maxToolRounds = 4

const toolFindParts = "findParts"

var ErrToolLoopExceeded = errors.New("model kept calling tools")

// Flows implements the three analysis flows on top of one model.
type Flows struct {
	model   llm.Model
	prompts *Prompts
	catalog ports.PartsCatalog
	logger  *zap.Logger
}

var (
	_ ports.VisionAnalyzer   = (*Flows)(nil)
	_ ports.PartsDiscoverer  = (*Flows)(nil)
	_ ports.RoadmapGenerator = (*Flows)(nil)
)

// NewFlows wires the flows. catalog may be nil, in which case parts
// discovery relies on the model alone.
func NewFlows(model llm.Model, prompts *Prompts, catalog ports.PartsCatalog, logger *zap.Logger) *Flows {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flows{model: model, prompts: prompts, catalog: catalog, logger: logger}
}

func (f *Flows) AnalyzeVehicle(ctx context.Context, input domain.VisionInput) (domain.AnalysisResult, error) {
	var out domain.AnalysisResult
	if err := f.run(ctx, PromptVision, input, visionSchema, nil, &out); err != nil {
		return domain.AnalysisResult{}, err
	}
	return out, nil
}

type partsPromptData struct {
	domain.PartsQuery
	UseTool bool
	Catalog string
}

func (f *Flows) DiscoverParts(ctx context.Context, query domain.PartsQuery) (domain.PartsResult, error) {
	data := partsPromptData{PartsQuery: query}
	var tools []llm.Tool

	switch {
	case f.catalog == nil:
	case f.model.SupportsTools():
		data.UseTool = true
		tools = []llm.Tool{{
			Name:        toolFindParts,
			Description: "Finds parts for a vehicle.",
			Parameters:  findPartsParams,
		}}
	default:
		listing, err := f.catalog.FindParts(ctx, query)
		if err != nil {
			return domain.PartsResult{}, fmt.Errorf("%s flow: %s: %w", PromptParts, toolFindParts, err)
		}
		raw, err := json.Marshal(listing)
		if err != nil {
			return domain.PartsResult{}, fmt.Errorf("%s flow: encode listing: %w", PromptParts, err)
		}
		data.Catalog = string(raw)
	}

	var out domain.PartsResult
	if err := f.run(ctx, PromptParts, data, partsSchema, tools, &out); err != nil {
		return domain.PartsResult{}, err
	}
	if out.Parts == nil {
		out.Parts = []domain.Part{}
	}
	return out, nil
}

func (f *Flows) GenerateRoadmap(ctx context.Context, input domain.RoadmapInput) (domain.RoadmapResult, error) {
	var out domain.RoadmapResult
	if err := f.run(ctx, PromptRoadmap, input, roadmapSchema, nil, &out); err != nil {
		return domain.RoadmapResult{}, err
	}
	return out, nil
}

// run renders the prompt, drives the tool loop and decodes the final answer.
func (f *Flows) run(ctx context.Context, flow string, data any, schema *llm.Schema, tools []llm.Tool, out any) error {
	prompt, err := f.prompts.Render(flow, data)
	if err != nil {
		return fmt.Errorf("%s flow: %w", flow, err)
	}

	req := llm.Request{
		Messages: []llm.Message{llm.UserText(prompt)},
		Tools:    tools,
		Schema:   schema,
	}

	for round := 0; ; round++ {
		resp, err := f.model.Generate(ctx, req)
		if err != nil {
			f.logger.Warn("model call failed", zap.String("flow", flow), zap.String("model", f.model.Name()), zap.Error(err))
			return fmt.Errorf("%s flow: %w", flow, err)
		}

		if len(resp.ToolCalls) == 0 {
			if err := decodeOutput(resp.Text, schema, out); err != nil {
				f.logger.Warn("model output rejected", zap.String("flow", flow), zap.Error(err))
				return fmt.Errorf("%s flow: %w", flow, err)
			}
			return nil
		}

		if round+1 >= maxToolRounds {
			return fmt.Errorf("%s flow: %w after %d rounds", flow, ErrToolLoopExceeded, maxToolRounds)
		}

		req.Messages = append(req.Messages, llm.Message{Role: llm.RoleAssistant, Text: resp.Text, ToolCalls: resp.ToolCalls})
		for _, call := range resp.ToolCalls {
			result, err := f.callTool(ctx, call)
			if err != nil {
				return fmt.Errorf("%s flow: %w", flow, err)
			}
			req.Messages = append(req.Messages, llm.Message{
				Role:       llm.RoleTool,
				ToolResult: &llm.ToolResult{CallID: call.ID, Name: call.Name, Content: result},
			})
		}
	}
}

func (f *Flows) callTool(ctx context.Context, call llm.ToolCall) (json.RawMessage, error) {
	if call.Name != toolFindParts || f.catalog == nil {
		return nil, fmt.Errorf("model called unknown tool %q", call.Name)
	}

	var query domain.PartsQuery
	if err := json.Unmarshal(call.Args, &query); err != nil {
		return nil, fmt.Errorf("decode %s arguments: %w", call.Name, err)
	}

	f.logger.Debug("calling tool", zap.String("tool", call.Name), zap.Strings("parts", query.Parts))
	listing, err := f.catalog.FindParts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", call.Name, err)
	}

	raw, err := json.Marshal(listing)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", call.Name, err)
	}
	return raw, nil
}
