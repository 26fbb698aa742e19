// Package llm adapts hosted and local language models to one request shape.
package llm

import (
	"context"
	"encoding/json"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one conversation turn. Assistant turns may carry tool calls;
// tool turns carry exactly one result.
type Message struct {
	Role       Role
	Text       string
	ToolCalls  []ToolCall
	ToolResult *ToolResult
}

// Tool is a function the model may call. Parameters is a JSON schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

type ToolCall struct {
	ID   string
	Name string
	Args json.RawMessage
}

type ToolResult struct {
	CallID  string
	Name    string
	Content json.RawMessage
}

// Request asks for one model turn. When Schema is set the model is put in
// JSON mode and asked to match it.
type Request struct {
	System   string
	Messages []Message
	Tools    []Tool
	Schema   *Schema
}

type Response struct {
	Text      string
	ToolCalls []ToolCall
}

type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)
	// SupportsTools reports whether Generate honours Request.Tools.
	SupportsTools() bool
	Name() string
}

func UserText(text string) Message {
	return Message{Role: RoleUser, Text: text}
}
