package groq

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// NewOpenAIClient returns an OpenAI-compatible client pointed at the configured Groq base URL.
func NewOpenAIClient(cfg config.GroqConfig, httpClient *http.Client) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(clientCfg)
}

type TranscriptionError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TranscriptionError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("speech-to-text request failed: %v", e.Err)
	}
	return fmt.Sprintf("Whisper API error: %d - %s", e.StatusCode, e.Body)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

type CompletionError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("completion request failed: %v", e.Err)
	}
	return fmt.Sprintf("completion API error: %d - %s", e.StatusCode, e.Body)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// statusAndBody pulls the HTTP status and message out of a go-openai error.
func statusAndBody(err error) (int, string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Message
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, reqErr.Error()
	}
	return 0, err.Error()
}
