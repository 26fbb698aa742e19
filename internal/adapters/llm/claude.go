package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	defaultClaudeBaseURL   = "https://api.anthropic.com"
	defaultClaudeModel     = "claude-3-5-haiku-latest"
	claudeAPIVersion       = "2023-06-01"
	defaultClaudeMaxTokens = 4096
)

// Claude speaks the Anthropic messages API.
type Claude struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Model = (*Claude)(nil)

func NewClaude(cfg Config) *Claude {
	return &Claude{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(firstNonEmpty(cfg.BaseURL, defaultClaudeBaseURL), "/"),
		model:      firstNonEmpty(cfg.Model, defaultClaudeModel),
		httpClient: cfg.httpClient(),
	}
}

func (c *Claude) Name() string        { return "claude:" + c.model }
func (c *Claude) SupportsTools() bool { return true }

type claudeBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

type claudeMessage struct {
	Role    string        `json:"role"`
	Content []claudeBlock `json:"content"`
}

type claudeTool struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	InputSchema *Schema `json:"input_schema"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
	Tools     []claudeTool    `json:"tools,omitempty"`
}

type claudeResponse struct {
	Content []claudeBlock `json:"content"`
}

func (c *Claude) Generate(ctx context.Context, req Request) (Response, error) {
	body := claudeRequest{
		Model:     c.model,
		MaxTokens: defaultClaudeMaxTokens,
		System:    req.System,
	}
	if req.Schema != nil {
		schema, err := json.Marshal(req.Schema)
		if err != nil {
			return Response{}, err
		}
		body.System = strings.TrimSpace(body.System + "\n\nRespond with a single JSON object matching this schema and nothing else:\n" + string(schema))
	}
	for _, msg := range req.Messages {
		body.Messages = append(body.Messages, toClaudeMessage(msg))
	}
	for _, tool := range req.Tools {
		params := tool.Parameters
		if params == nil {
			params = Object(nil, nil)
		}
		body.Tools = append(body.Tools, claudeTool{Name: tool.Name, Description: tool.Description, InputSchema: params})
	}

	header := http.Header{}
	header.Set("x-api-key", c.apiKey)
	header.Set("anthropic-version", claudeAPIVersion)

	var resp claudeResponse
	if err := postJSON(ctx, c.httpClient, "claude", c.baseURL+"/v1/messages", header, body, &resp); err != nil {
		return Response{}, err
	}

	var out Response
	var text strings.Builder
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
		case "tool_use":
			out.ToolCalls = append(out.ToolCalls, ToolCall{ID: block.ID, Name: block.Name, Args: argsOrEmpty(block.Input)})
		}
	}
	out.Text = text.String()

	return out, nil
}

func toClaudeMessage(msg Message) claudeMessage {
	switch msg.Role {
	case RoleTool:
		out := claudeMessage{Role: "user"}
		if msg.ToolResult != nil {
			out.Content = []claudeBlock{{
				Type:      "tool_result",
				ToolUseID: msg.ToolResult.CallID,
				Content:   string(msg.ToolResult.Content),
			}}
		}
		return out
	case RoleAssistant:
		out := claudeMessage{Role: "assistant"}
		if msg.Text != "" {
			out.Content = append(out.Content, claudeBlock{Type: "text", Text: msg.Text})
		}
		for _, call := range msg.ToolCalls {
			out.Content = append(out.Content, claudeBlock{Type: "tool_use", ID: call.ID, Name: call.Name, Input: argsOrEmpty(call.Args)})
		}
		return out
	default:
		return claudeMessage{Role: "user", Content: []claudeBlock{{Type: "text", Text: msg.Text}}}
	}
}
