package implementation

import (
	"context"
	"fmt"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/mapper"
	"mindmate-be/internal/model"
	"mindmate-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk count %d does not match embedding count %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, chunk := range chunks {
		models[i] = r.mapper.ToModel(chunk, embeddings[i])
	}

	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

type knowledgeChunkWithSimilarity struct {
	model.KnowledgeChunk
	Similarity float64
}

func (r *KnowledgeChunkRepositoryImpl) SearchSimilarWithScore(
	ctx context.Context,
	embedding []float32,
	limit int,
	threshold float64,
) ([]*contract.ScoredKnowledgeChunk, error) {
	queryVector := pgvector.NewVector(embedding)

	var results []knowledgeChunkWithSimilarity
	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeChunk, len(results))
	for i, res := range results {
		chunk := r.mapper.ToEntity(&res.KnowledgeChunk)
		chunk.Score = res.Similarity
		scored[i] = &contract.ScoredKnowledgeChunk{
			Chunk:      chunk,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
