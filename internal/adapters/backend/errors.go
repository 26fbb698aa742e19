package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError is a non-2xx backend response. Message is the server's own
// explanation, taken from a "message" or "detail" field when present.
type StatusError struct {
	Status   int
	Message  string
	Fallback string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Fallback != "" {
		return e.Fallback
	}

	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Detail reports only what the server said, never the fallback text.
func (e *StatusError) Detail() string {
	return e.Message
}

type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

func decodeErrorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}

	// FastAPI puts a string in detail for HTTPException and a list of
	// objects for validation failures.
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return strings.TrimSpace(detail)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
