package contract

import (
	"context"

	"mindmate-be/internal/entity"
)

// ScoredKnowledgeChunk pairs a chunk with its query-time cosine similarity.
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64
}

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk, embeddings [][]float32) error

	// SearchSimilarWithScore runs a pgvector cosine search over the shared
	// knowledge base, filtered by the relevance floor.
	SearchSimilarWithScore(
		ctx context.Context,
		embedding []float32,
		limit int,
		threshold float64,
	) ([]*ScoredKnowledgeChunk, error)
}
