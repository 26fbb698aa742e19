package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSessionIgnoresWhitespace(t *testing.T) {
	diagnoser := mocks.NewMockDiagnoser(t)
	session := NewChatService(diagnoser, nil).NewSession(corolla)

	_, err := session.Submit(context.Background(), "   \n\t")

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, session.History())
	assert.False(t, session.Replying())
}

func TestChatSessionAppendsReplyAndSendsPriorHistory(t *testing.T) {
	diagnoser := mocks.NewMockDiagnoser(t)
	session := NewChatService(diagnoser, nil).NewSession(corolla)

	diagnoser.EXPECT().Diagnose(mockAnyContext(), domain.NewDiagnosisInput(corolla, "grinding noise", nil)).
		Return("Possible issue detected: brake pad wear", nil).Once()
	diagnoser.EXPECT().Diagnose(mockAnyContext(), domain.NewDiagnosisInput(corolla, "only when turning", []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "grinding noise"},
		{Role: domain.RoleAssistant, Content: "Possible issue detected: brake pad wear"},
	})).Return("Check the CV joint.", nil).Once()

	_, err := session.Submit(context.Background(), "grinding noise")
	require.NoError(t, err)
	reply, err := session.Submit(context.Background(), "only when turning")
	require.NoError(t, err)

	assert.Equal(t, "Check the CV joint.", reply.Content)
	history := session.History()
	require.Len(t, history, 4)
	assert.Equal(t, domain.RoleUser, history[2].Role)
	assert.Equal(t, domain.RoleAssistant, history[3].Role)
}

func TestChatSessionAppendsFallbackOnFailure(t *testing.T) {
	diagnoser := mocks.NewMockDiagnoser(t)
	session := NewChatService(diagnoser, nil).NewSession(corolla)

	diagnoser.EXPECT().Diagnose(mockAnyContext(), mockAnyContext()).Return("", errors.New("Diagnostics API failed"))

	reply, err := session.Submit(context.Background(), "engine stalls")
	require.NoError(t, err)

	assert.Equal(t, domain.FallbackReply, reply.Content)
	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "engine stalls"},
		{Role: domain.RoleAssistant, Content: "I'm sorry, I encountered an error and can't provide a diagnosis right now."},
	}, session.History())
	assert.False(t, session.Replying())
}

func TestChatSessionRejectsSubmitWhileReplying(t *testing.T) {
	diagnoser := mocks.NewMockDiagnoser(t)
	session := NewChatService(diagnoser, nil).NewSession(corolla)

	started := make(chan struct{})
	release := make(chan struct{})
	diagnoser.EXPECT().Diagnose(mockAnyContext(), mockAnyContext()).
		RunAndReturn(func(context.Context, domain.DiagnosisInput) (string, error) {
			close(started)
			<-release
			return "done", nil
		}).Once()

	done := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background(), "first")
		done <- err
	}()

	<-started
	assert.True(t, session.Replying())
	_, err := session.Submit(context.Background(), "second")
	assert.ErrorIs(t, err, domain.ErrReplyInFlight)
	assert.Len(t, session.History(), 1)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, session.History(), 2)
}
