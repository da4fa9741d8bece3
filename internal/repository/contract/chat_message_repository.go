package contract

import (
	"context"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/specification"
)

// ChatMessageRepository is append-only: no update or delete.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
