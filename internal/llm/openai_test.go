package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAITestConfig(srvURL string) LLMConfig {
	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = srvURL + "/v1"
	return cfg
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)
		assert.Equal(t, 1500, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-6)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "persona", req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Equal(t, "prompt body", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4-0613",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": "  Rest and hydrate.\n"},
				"finish_reason": "stop",
			}},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(openAITestConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskAdvice,
		SystemPrompt: "persona",
		UserPrompt:   "prompt body",
	})

	require.NoError(t, err)
	assert.Equal(t, "  Rest and hydrate.\n", resp.Text, "text must be returned unmodified")
	assert.Equal(t, "gpt-4-0613", resp.Model)
}

func TestOpenAIClient_Generate_QuestionTokenCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1200, req.MaxTokens)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "ok"}}},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(openAITestConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskQuestion, UserPrompt: "q"})
	require.NoError(t, err)
}

func TestOpenAIClient_Generate_ProviderErrorSurfacesRawText(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided: sk-test","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client := NewOpenAIClient(openAITestConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvice, UserPrompt: "q"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided: sk-test")
	var apiErr *openai.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 1, calls, "no retries by default")
	assert.False(t, captured.Success)
	assert.Equal(t, "PROVIDER_ERROR", captured.ErrorCode)
}

func TestOpenAIClient_Generate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := NewOpenAIClient(openAITestConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvice, UserPrompt: "q"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClient_Available(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, NewOpenAIClient(cfg, nil).Available(context.Background()))

	cfg.APIKey = "sk-test"
	assert.True(t, NewOpenAIClient(cfg, nil).Available(context.Background()))
}
