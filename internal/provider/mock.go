package provider

import (
	"context"
	"sync"

	"github.com/jmehdipour/whatsapp-gateway/internal/model"
)

// MockClient is a test double for Client. Behavior comes from the function
// fields; calls are counted under a mutex so tests can assert how many
// provider round trips a request produced.
type MockClient struct {
	SendFunc  func(ctx context.Context, req model.SendRequest) (*model.SendResult, error)
	CheckFunc func(ctx context.Context) (bool, error)

	mu         sync.Mutex
	sendCalls  int
	checkCalls int
}

func (m *MockClient) Send(ctx context.Context, req model.SendRequest) (*model.SendResult, error) {
	m.mu.Lock()
	m.sendCalls++
	m.mu.Unlock()

	if m.SendFunc == nil {
		return &model.SendResult{SID: "SM123", To: req.To, Body: req.Body, NumMedia: req.MediaCount()}, nil
	}
	return m.SendFunc(ctx, req)
}

func (m *MockClient) CheckCredentials(ctx context.Context) (bool, error) {
	m.mu.Lock()
	m.checkCalls++
	m.mu.Unlock()

	if m.CheckFunc == nil {
		return true, nil
	}
	return m.CheckFunc(ctx)
}

// SendCalls reports how many times Send was invoked.
func (m *MockClient) SendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCalls
}

// CheckCalls reports how many times CheckCredentials was invoked.
func (m *MockClient) CheckCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkCalls
}
