package groq

import (
	"context"
	"errors"

	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	openai "github.com/sashabaranov/go-openai"
)

type CompletionClient struct {
	client *openai.Client
	model  string
}

func NewCompletionClient(client *openai.Client, model string) *CompletionClient {
	return &CompletionClient{client: client, model: model}
}

func (c *CompletionClient) Complete(ctx context.Context, req insights.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		status, body := statusAndBody(err)
		return "", &CompletionError{StatusCode: status, Body: body, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Err: errors.New("empty completion response")}
	}
	return resp.Choices[0].Message.Content, nil
}
