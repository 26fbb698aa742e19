package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FallbackReply is appended when the diagnosis call fails for any reason.
const FallbackReply = "I'm sorry, I encountered an error and can't provide a diagnosis right now."

type ChatMessage struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Transcript is an ordered, append-only conversation.
type Transcript struct {
	messages []ChatMessage
}

// Append returns a new transcript. The receiver is left unchanged and the two
// never share a backing array.
func (t Transcript) Append(msg ChatMessage) Transcript {
	next := make([]ChatMessage, len(t.messages), len(t.messages)+1)
	copy(next, t.messages)

	return Transcript{messages: append(next, msg)}
}

func (t Transcript) History() []ChatMessage {
	return append([]ChatMessage(nil), t.messages...)
}

func (t Transcript) Len() int {
	return len(t.messages)
}

func (t Transcript) Last() (ChatMessage, bool) {
	if len(t.messages) == 0 {
		return ChatMessage{}, false
	}

	return t.messages[len(t.messages)-1], true
}

// DiagnosisInput is everything the diagnosis flow is given for one reply.
type DiagnosisInput struct {
	VehicleType        string        `json:"vehicleType"`
	Brand              string        `json:"brand"`
	Model              string        `json:"model"`
	Year               string        `json:"year"`
	Mileage            string        `json:"mileage"`
	ProblemDescription string        `json:"problemDescription"`
	ChatHistory        []ChatMessage `json:"chatHistory"`
}

func NewDiagnosisInput(vehicle VehicleDescriptor, message string, history []ChatMessage) DiagnosisInput {
	return DiagnosisInput{
		VehicleType:        vehicle.VehicleType,
		Brand:              vehicle.Brand,
		Model:              vehicle.Model,
		Year:               vehicle.Year,
		Mileage:            vehicle.Mileage,
		ProblemDescription: message,
		ChatHistory:        append([]ChatMessage(nil), history...),
	}
}
