package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAI speaks the chat completions API. Any compatible server works
// through BaseURL.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Model = (*OpenAI)(nil)

func NewOpenAI(cfg Config) *OpenAI {
	return &OpenAI{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(firstNonEmpty(cfg.BaseURL, defaultOpenAIBaseURL), "/"),
		model:      firstNonEmpty(cfg.Model, defaultOpenAIModel),
		httpClient: cfg.httpClient(),
	}
}

func (c *OpenAI) Name() string        { return "openai:" + c.model }
func (c *OpenAI) SupportsTools() bool { return true }

type openAIMessage struct {
	Role       string           `json:"role"`
	Content    *string          `json:"content"`
	ToolCalls  []openAIToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

type openAIToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openAITool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string  `json:"name"`
		Description string  `json:"description,omitempty"`
		Parameters  *Schema `json:"parameters,omitempty"`
	} `json:"function"`
}

type openAIRequest struct {
	Model          string            `json:"model"`
	Messages       []openAIMessage   `json:"messages"`
	Tools          []openAITool      `json:"tools,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	body := openAIRequest{Model: c.model}
	if req.System != "" {
		body.Messages = append(body.Messages, openAIMessage{Role: "system", Content: strPtr(req.System)})
	}
	for _, msg := range req.Messages {
		body.Messages = append(body.Messages, toOpenAIMessage(msg))
	}
	for _, tool := range req.Tools {
		var t openAITool
		t.Type = "function"
		t.Function.Name = tool.Name
		t.Function.Description = tool.Description
		t.Function.Parameters = tool.Parameters
		body.Tools = append(body.Tools, t)
	}
	if req.Schema != nil {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
	}

	var resp openAIResponse
	if err := postJSON(ctx, c.httpClient, "openai", c.baseURL+"/chat/completions", header, body, &resp); err != nil {
		return Response{}, err
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("openai: response has no choices")
	}

	msg := resp.Choices[0].Message
	out := Response{}
	if msg.Content != nil {
		out.Text = *msg.Content
	}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: argsOrEmpty(json.RawMessage(call.Function.Arguments)),
		})
	}

	return out, nil
}

func toOpenAIMessage(msg Message) openAIMessage {
	switch msg.Role {
	case RoleTool:
		out := openAIMessage{Role: "tool"}
		if msg.ToolResult != nil {
			out.ToolCallID = msg.ToolResult.CallID
			out.Content = strPtr(string(msg.ToolResult.Content))
		}
		return out
	case RoleAssistant:
		out := openAIMessage{Role: "assistant"}
		if msg.Text != "" || len(msg.ToolCalls) == 0 {
			out.Content = strPtr(msg.Text)
		}
		for _, call := range msg.ToolCalls {
			var oc openAIToolCall
			oc.ID = call.ID
			oc.Type = "function"
			oc.Function.Name = call.Name
			oc.Function.Arguments = string(argsOrEmpty(call.Args))
			out.ToolCalls = append(out.ToolCalls, oc)
		}
		return out
	default:
		return openAIMessage{Role: "user", Content: strPtr(msg.Text)}
	}
}

func strPtr(s string) *string {
	return &s
}
