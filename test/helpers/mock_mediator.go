package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
)

// MockMediator is a test double for common.Mediator. Send answers with the
// configured send func; without one every request fails.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request common.Request) (common.Response, error)
	callLog  []string // request names, in call order
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{callLog: []string{}}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	m.callLog = append(m.callLog, common.RequestName(request))
	fn := m.sendFunc
	m.mu.Unlock()

	if fn == nil {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return fn(ctx, request)
}

// Register is a no-op; responses come from the send func
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

// RegisterMiddleware is a no-op
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// SetError makes every Send fail with err
func (m *MockMediator) SetError(err error) {
	m.SetSendFunc(func(context.Context, common.Request) (common.Response, error) {
		return nil, err
	})
}

// GetCallLog returns the names of the requests sent so far
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.callLog...)
}
