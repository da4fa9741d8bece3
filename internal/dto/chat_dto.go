package dto

import (
	"time"

	"github.com/google/uuid"
)

// HistoryTurn is one prior message supplied by the client. The server
// trusts its own transcript store over this, but accepts client history
// for stateless callers.
type HistoryTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type SendChatRequest struct {
	Message             string        `json:"message" validate:"required,max=4000"`
	ConversationHistory []HistoryTurn `json:"conversationHistory" validate:"omitempty,max=50,dive"`
}

type SendChatResponse struct {
	Response            string   `json:"response"`
	CrisisDetected      bool     `json:"crisisDetected"`
	SevereCrisis        bool     `json:"severeCrisis"`
	ChatDisabled        bool     `json:"chatDisabled"`
	EmailSent           bool     `json:"emailSent"`
	Sources             []string `json:"sources"`
	FitbitDataUsed      bool     `json:"fitbitDataUsed"`
	ContextUsed         bool     `json:"contextUsed"`
	ToolsUsed           []string `json:"toolsUsed"`
	OrchestrationTimeMs int64    `json:"orchestrationTimeMs"`
}

type ChatHistoryItem struct {
	Id           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	SevereCrisis bool      `json:"severe_crisis"`
	CreatedAt    time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	Messages []ChatHistoryItem `json:"messages"`
	Total    int64             `json:"total"`
}

// PublishMemoryMessage is the payload handed to the async memory writer.
// The chat path publishes it fire-and-forget after replying.
type PublishMemoryMessage struct {
	UserId      uuid.UUID              `json:"user_id"`
	UserMessage string                 `json:"user_message"`
	AiResponse  string                 `json:"ai_response"`
	Category    string                 `json:"category"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily chat limit exceeded"
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

// LimitExceededResponse is the full 429 response structure
type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
