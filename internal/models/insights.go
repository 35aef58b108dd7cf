package models

type SummarizeInput struct {
	Text string `json:"text" validate:"required"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content"`
}

type ChatInput struct {
	Question   string         `json:"question" validate:"required"`
	Transcript string         `json:"transcript" validate:"required"`
	Metadata   *VideoMetadata `json:"metadata,omitempty"`
	History    []ChatTurn     `json:"history,omitempty" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
