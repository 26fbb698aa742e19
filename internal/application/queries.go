package application

import "github.com/bnema/motorsense/internal/domain"

// TuningView is a consistent snapshot for rendering.
type TuningView struct {
	Schema     *domain.EcuSchema
	Params     domain.EcuConfig
	Goal       domain.Goal
	Result     *domain.Recommendation
	Error      string
	Optimizing bool
}

// ChatView is what a page needs to render a conversation.
type ChatView struct {
	Vehicle  domain.VehicleDescriptor
	Messages []domain.ChatMessage
	Replying bool
}
