package contract

import (
	"context"

	"mindmate-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredMemoryRecord pairs a record with its query-time cosine similarity.
type ScoredMemoryRecord struct {
	Record     *entity.MemoryRecord
	Similarity float64
}

type MemoryRecordRepository interface {
	Create(ctx context.Context, record *entity.MemoryRecord, embedding []float32) error

	// SearchSimilarWithScore runs a pgvector cosine search scoped to one user,
	// optionally restricted to categories, filtered by a similarity threshold.
	SearchSimilarWithScore(
		ctx context.Context,
		embedding []float32,
		limit int,
		userId uuid.UUID,
		threshold float64,
		categories []string,
	) ([]*ScoredMemoryRecord, error)
}
