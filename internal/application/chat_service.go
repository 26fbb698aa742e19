package application

import (
	"context"
	"strings"
	"sync"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

type ChatService struct {
	diagnoser ports.Diagnoser
	logger    *zap.Logger
}

func NewChatService(diagnoser ports.Diagnoser, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChatService{diagnoser: diagnoser, logger: logger}
}

func (s *ChatService) NewSession(vehicle domain.VehicleDescriptor) *ChatSession {
	return &ChatSession{service: s, vehicle: vehicle}
}

// ChatSession is one diagnosis conversation. At most one reply is in flight.
type ChatSession struct {
	service *ChatService
	vehicle domain.VehicleDescriptor

	mu         sync.Mutex
	transcript domain.Transcript
	replying   bool
}

// Submit appends the user's message, asks for a diagnosis and appends the
// reply. Any failure appends the fixed fallback instead of surfacing an error.
// Whitespace-only input returns domain.ErrEmptyMessage and changes nothing.
func (c *ChatSession) Submit(ctx context.Context, text string) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.replying {
		c.mu.Unlock()
		return domain.ChatMessage{}, domain.ErrReplyInFlight
	}
	history := c.transcript.History()
	c.transcript = c.transcript.Append(domain.ChatMessage{Role: domain.RoleUser, Content: text})
	c.replying = true
	c.mu.Unlock()

	reply, err := c.service.diagnoser.Diagnose(ctx, domain.NewDiagnosisInput(c.vehicle, text, history))
	if err != nil {
		c.service.logger.Warn("diagnosis failed", zap.String("vehicle", c.vehicle.Title()), zap.Error(err))
		reply = domain.FallbackReply
	}

	msg := domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}

	c.mu.Lock()
	c.transcript = c.transcript.Append(msg)
	c.replying = false
	c.mu.Unlock()

	return msg, nil
}

func (c *ChatSession) History() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.transcript.History()
}

func (c *ChatSession) Replying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.replying
}

func (c *ChatSession) Vehicle() domain.VehicleDescriptor {
	return c.vehicle
}

func (c *ChatSession) View() ChatView {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ChatView{Vehicle: c.vehicle, Messages: c.transcript.History(), Replying: c.replying}
}
