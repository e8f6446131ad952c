package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskAdvice covers the three structured advice roles.
	TaskAdvice TaskType = "advice"
	// TaskQuestion covers the three free-text question roles.
	TaskQuestion TaskType = "question"
)

// Provider selects the completion backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
// A zero TimeoutMs means the provider's own defaults apply.
type LLMConfig struct {
	Provider   Provider
	APIKey     string
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns the OpenAI configuration with no application
// timeout. Requests are never retried.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOpenAI,
		Model:      "gpt-4",
		TimeoutMs:  0,
		Tasks: map[TaskType]TaskConfig{
			TaskAdvice:   {Temperature: 0.7, MaxTokens: 1500},
			TaskQuestion: {Temperature: 0.7, MaxTokens: 1200},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	if v := os.Getenv("CAREWISE_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
		if cfg.Provider == ProviderOllama {
			cfg.Model = "llama3.2"
			cfg.Endpoint = "http://localhost:11434"
		}
	}
	if v := os.Getenv("CAREWISE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CAREWISE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("CAREWISE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CAREWISE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskAdvice, "CAREWISE_LLM_ADVICE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskQuestion, "CAREWISE_LLM_QUESTION_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
