package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

// CompleteCall records one request seen by the mock.
type CompleteCall struct {
	Prompt  string
	Context string
	Image   *domain.ImageData
}

// MockLLM is a canned LLMClient for local mode and tests. It records every
// call so tests can assert on the context that was sent.
type MockLLM struct {
	mu    sync.Mutex
	calls []CompleteCall

	// Reply, when set, overrides the canned response.
	Reply string
	// Err, when set, is returned instead of a reply.
	Err error
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Complete(ctx context.Context, prompt, convContext string, image *domain.ImageData) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CompleteCall{Prompt: prompt, Context: convContext, Image: image})
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return fmt.Sprintf("Thanks for sharing. You said %q. Tell me more about what you have in mind.", prompt), nil
}

// Calls returns a copy of the recorded requests.
func (m *MockLLM) Calls() []CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompleteCall, len(m.calls))
	copy(out, m.calls)
	return out
}
