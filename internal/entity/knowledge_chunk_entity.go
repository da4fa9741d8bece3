package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is one embedded passage of the mental-health knowledge base
// (CBT techniques, sleep hygiene, coping strategies...).
type KnowledgeChunk struct {
	Id         uuid.UUID
	Source     string // originating document title
	Content    string
	ChunkIndex int
	// Score is query-time similarity, not stored.
	Score     float64
	CreatedAt time.Time
}
