package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type generateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Gemini uses the Google GenAI SDK with native JSON mode and function calling.
type Gemini struct {
	model    string
	generate generateContentFunc
}

var _ Model = (*Gemini)(nil)

func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient(),
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{
		model:    firstNonEmpty(cfg.Model, defaultGeminiModel),
		generate: client.Models.GenerateContent,
	}, nil
}

func (g *Gemini) Name() string        { return "gemini:" + g.model }
func (g *Gemini) SupportsTools() bool { return true }

func (g *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  toGenaiSchema(tool.Parameters),
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	} else if req.Schema != nil {
		// JSON mode cannot be combined with function declarations.
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(req.Schema)
	}

	contents, err := toGenaiContents(req.Messages)
	if err != nil {
		return Response{}, err
	}

	resp, err := g.generate(ctx, g.model, contents, config)
	if err != nil {
		return Response{}, fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil {
		return Response{}, errors.New("gemini: empty response")
	}

	out := Response{Text: resp.Text()}
	for _, call := range resp.FunctionCalls() {
		args, err := json.Marshal(call.Args)
		if err != nil {
			return Response{}, fmt.Errorf("gemini: encode %s args: %w", call.Name, err)
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{ID: call.ID, Name: call.Name, Args: argsOrEmpty(args)})
	}

	return out, nil
}

func toGenaiContents(messages []Message) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleAssistant:
			parts := []*genai.Part{}
			if msg.Text != "" {
				parts = append(parts, genai.NewPartFromText(msg.Text))
			}
			for _, call := range msg.ToolCalls {
				var args map[string]any
				if err := json.Unmarshal(argsOrEmpty(call.Args), &args); err != nil {
					return nil, fmt.Errorf("gemini: decode %s args: %w", call.Name, err)
				}
				part := genai.NewPartFromFunctionCall(call.Name, args)
				part.FunctionCall.ID = call.ID
				parts = append(parts, part)
			}
			contents = append(contents, &genai.Content{Role: string(genai.RoleModel), Parts: parts})
		case RoleTool:
			if msg.ToolResult == nil {
				continue
			}
			part := genai.NewPartFromFunctionResponse(msg.ToolResult.Name, toolResponseMap(msg.ToolResult.Content))
			part.FunctionResponse.ID = msg.ToolResult.CallID
			contents = append(contents, &genai.Content{Role: string(genai.RoleUser), Parts: []*genai.Part{part}})
		default:
			contents = append(contents, genai.NewContentFromText(msg.Text, genai.RoleUser))
		}
	}
	return contents, nil
}

// toolResponseMap turns a tool result into the object form the API expects.
// Non-object payloads are wrapped under "output".
func toolResponseMap(content json.RawMessage) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(content, &obj); err == nil && obj != nil {
		return obj
	}

	var value any
	if err := json.Unmarshal(content, &value); err != nil {
		return map[string]any{"output": string(content)}
	}
	return map[string]any{"output": value}
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(s.Type)),
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}
