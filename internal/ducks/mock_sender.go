package ducks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, channelID string, msg Message) error {
	args := m.Called(ctx, channelID, msg)
	return args.Error(0)
}
