package entity

import (
	"time"

	"github.com/google/uuid"
)

type MemoryCategory string

const (
	MemoryCategoryProfile       MemoryCategory = "profile"
	MemoryCategoryHealthInsight MemoryCategory = "health-insight"
	MemoryCategoryConversation  MemoryCategory = "conversation"
	MemoryCategoryConcern       MemoryCategory = "concern"
	MemoryCategoryGoal          MemoryCategory = "goal"
)

// MemoryRecord is a durable fact about a user. The core only appends and
// searches; existing records are never updated or deleted.
type MemoryRecord struct {
	Id       uuid.UUID
	UserId   uuid.UUID
	Text     string
	Category MemoryCategory
	Metadata map[string]interface{}
	// RelevanceScore is query-time only, populated by similarity search.
	RelevanceScore float64
	CreatedAt      time.Time
}
