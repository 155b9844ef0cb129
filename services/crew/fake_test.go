package crew

import (
	"context"
	"sync"

	"github.com/upb/career-advisor/services/providers"
)

// fakeProvider answers from a script and records every request.
type fakeProvider struct {
	mu       sync.Mutex
	replies  []string
	fallback string
	err      error
	requests []*providers.ChatRequest
	usagePer providers.Usage
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ChatCompletion(_ context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.requests)
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	content := f.fallback
	if i < len(f.replies) {
		content = f.replies[i]
	}
	return &providers.ChatResponse{Content: content, Provider: "fake", Usage: f.usagePer}, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func lastUserMessage(req *providers.ChatRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == providers.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}
