package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Xavierhuang/ScheduleShare/internal/llm"
)

// MockChatClient is a mock implementation of the chat-completion client
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
