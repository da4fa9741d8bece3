package mapper

import (
	"mindmate-be/internal/entity"
	"mindmate-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &entity.KnowledgeChunk{
		Id:         c.Id,
		Source:     c.Source,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c *entity.KnowledgeChunk, embedding []float32) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &model.KnowledgeChunk{
		Id:             c.Id,
		Source:         c.Source,
		Content:        c.Content,
		ChunkIndex:     c.ChunkIndex,
		EmbeddingValue: pgvector.NewVector(embedding),
		CreatedAt:      c.CreatedAt,
	}
}
