package llm

import (
	"context"
	"net/http"
	"strings"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.1"
)

// Ollama talks to a local ollama daemon. Tools are not offered; callers
// inline tool output into the prompt instead.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Model = (*Ollama)(nil)

func NewOllama(cfg Config) *Ollama {
	return &Ollama{
		baseURL:    strings.TrimRight(firstNonEmpty(cfg.BaseURL, defaultOllamaBaseURL), "/"),
		model:      firstNonEmpty(cfg.Model, defaultOllamaModel),
		httpClient: cfg.httpClient(),
	}
}

func (c *Ollama) Name() string        { return "ollama:" + c.model }
func (c *Ollama) SupportsTools() bool { return false }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
}

func (c *Ollama) Generate(ctx context.Context, req Request) (Response, error) {
	body := ollamaRequest{Model: c.model}
	if req.System != "" {
		body.Messages = append(body.Messages, ollamaMessage{Role: "system", Content: req.System})
	}
	for _, msg := range req.Messages {
		role := "user"
		text := msg.Text
		switch msg.Role {
		case RoleAssistant:
			role = "assistant"
		case RoleTool:
			role = "tool"
			if msg.ToolResult != nil {
				text = string(msg.ToolResult.Content)
			}
		}
		body.Messages = append(body.Messages, ollamaMessage{Role: role, Content: text})
	}
	if req.Schema != nil {
		body.Format = "json"
	}

	var resp ollamaResponse
	if err := postJSON(ctx, c.httpClient, "ollama", c.baseURL+"/api/chat", nil, body, &resp); err != nil {
		return Response{}, err
	}

	return Response{Text: resp.Message.Content}, nil
}
