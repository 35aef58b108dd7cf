package insights

import (
	"context"
	"errors"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
)

var (
	ErrTextRequired            = errors.New("Text is required")
	ErrQuestionRequired        = errors.New("Question and transcript are required")
	ErrCompletionNotConfigured = errors.New("GROQ_API_KEY not configured")
)

type UseCase interface {
	Summarize(ctx context.Context, input *models.SummarizeInput) (*models.SummarizeResponse, error)
	Chat(ctx context.Context, input *models.ChatInput) (*models.ChatResponse, error)
}

type Message struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// CompletionService is the hosted language model used for summaries and answers.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
