package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one transcript turn. Append-only: the core never updates or
// deletes rows, deletion is an account-management concern.
type ChatMessage struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Role         string // "user" | "assistant"
	Content      string
	SevereCrisis bool // audit flag set when the safety gate fired severe
	CreatedAt    time.Time
}
