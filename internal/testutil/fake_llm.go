package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/carewise/internal/llm"
)

// FakeLLM is a scripted llm.LLMClient that records every request.
type FakeLLM struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests []llm.GenerateRequest
}

// NewFakeLLM returns a FakeLLM that answers every request with response.
func NewFakeLLM(response string) *FakeLLM {
	return &FakeLLM{Response: response}
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.GenerateResponse{Text: f.Response, Model: "fake-gpt", LatencyMs: 1}, nil
}

func (f *FakeLLM) Available(_ context.Context) bool { return f.Err == nil }

// Calls returns the number of Generate calls so far.
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastRequest returns the most recent request, or the zero value.
func (f *FakeLLM) LastRequest() llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return llm.GenerateRequest{}
	}
	return f.Requests[len(f.Requests)-1]
}
