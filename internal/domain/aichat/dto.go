package aichat

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"

	maxHistory = 10
)

type Turn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant model"`
	Content string `json:"content" binding:"required,max=2000"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
	History []Turn `json:"history" binding:"omitempty,max=50,dive"`
}

type ChatReply struct {
	Message string `json:"message"`
	Source  string `json:"source"`
}
