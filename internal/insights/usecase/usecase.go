package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
)

const (
	summaryCharBudget = 15000
	chatCharBudget    = 8000
	summaryMaxTokens  = 2048
	chatMaxTokens     = 800
	temperature       = 0.7
	previewChars      = 500
)

type insightsUC struct {
	completion insights.CompletionService
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewInsightsUseCase builds the summary and chat use case. completion may be nil when no
// credential is configured.
func NewInsightsUseCase(completion insights.CompletionService, m *metrics.Metrics, log logger.Logger) insights.UseCase {
	return &insightsUC{
		completion: completion,
		metrics:    m,
		logger:     log,
	}
}

func (u *insightsUC) Summarize(ctx context.Context, input *models.SummarizeInput) (*models.SummarizeResponse, error) {
	if input == nil || strings.TrimSpace(input.Text) == "" {
		return nil, insights.ErrTextRequired
	}
	u.metrics.Summaries.Add(1)

	if u.completion == nil {
		u.logger.Warn("Summarize - no completion credential, returning simulated summary")
		return &models.SummarizeResponse{Summary: simulatedSummary(input.Text)}, nil
	}

	summary, err := u.completion.Complete(ctx, insights.CompletionRequest{
		Messages: []insights.Message{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: "Transcript:\n\n" + truncate(input.Text, summaryCharBudget)},
		},
		Temperature: temperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		u.logger.Errorf("Summarize - Complete error: %v", err)
		return nil, err
	}
	return &models.SummarizeResponse{Summary: summary}, nil
}

func (u *insightsUC) Chat(ctx context.Context, input *models.ChatInput) (*models.ChatResponse, error) {
	if input == nil || strings.TrimSpace(input.Question) == "" || strings.TrimSpace(input.Transcript) == "" {
		return nil, insights.ErrQuestionRequired
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("Chat - ValidateStruct error: %v", err)
		return nil, err
	}
	if u.completion == nil {
		return nil, insights.ErrCompletionNotConfigured
	}
	u.metrics.Chats.Add(1)

	answer, err := u.completion.Complete(ctx, insights.CompletionRequest{
		Messages:    chatMessages(input),
		Temperature: temperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		u.logger.Errorf("Chat - Complete error: %v", err)
		return nil, err
	}
	return &models.ChatResponse{Answer: answer}, nil
}

func chatMessages(input *models.ChatInput) []insights.Message {
	var b strings.Builder
	b.WriteString("You are a helpful assistant answering questions about a YouTube video.\n\n")
	if input.Metadata != nil {
		fmt.Fprintf(&b, "Video Title: %s\nChannel: %s\n\n", input.Metadata.Title, input.Metadata.Channel)
	}
	b.WriteString("Transcript:\n")
	b.WriteString(truncate(input.Transcript, chatCharBudget))
	b.WriteString("\n\n")
	b.WriteString(chatRules)

	messages := []insights.Message{{Role: "system", Content: b.String()}}
	for _, turn := range input.History {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		messages = append(messages, insights.Message{Role: turn.Role, Content: turn.Content})
	}
	return append(messages, insights.Message{Role: "user", Content: input.Question})
}

func simulatedSummary(text string) string {
	return fmt.Sprintf("%s\n\n## Overview\nA summary would appear here once a completion credential is configured.\n\n## Transcript preview\n%s",
		simulatedSummaryNotice, truncate(text, previewChars))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
