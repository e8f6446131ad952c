package llm

import "errors"

var (
	// ErrEmptyResponse indicates the provider answered without any choices.
	ErrEmptyResponse = errors.New("llm returned no completion")

	// ErrUnknownProvider indicates an unsupported CAREWISE_LLM_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown llm provider")
)
