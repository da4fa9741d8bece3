package mapper

import (
	"encoding/json"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type MemoryRecordMapper struct{}

func NewMemoryRecordMapper() *MemoryRecordMapper {
	return &MemoryRecordMapper{}
}

func (m *MemoryRecordMapper) ToEntity(r *model.MemoryRecord) *entity.MemoryRecord {
	if r == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(r.Metadata) > 0 {
		// Malformed metadata degrades to nil, search results stay usable
		_ = json.Unmarshal(r.Metadata, &metadata)
	}
	return &entity.MemoryRecord{
		Id:        r.Id,
		UserId:    r.UserId,
		Text:      r.Text,
		Category:  entity.MemoryCategory(r.Category),
		Metadata:  metadata,
		CreatedAt: r.CreatedAt,
	}
}

func (m *MemoryRecordMapper) ToModel(r *entity.MemoryRecord, embedding []float32) *model.MemoryRecord {
	if r == nil {
		return nil
	}
	var metadata datatypes.JSON
	if r.Metadata != nil {
		if raw, err := json.Marshal(r.Metadata); err == nil {
			metadata = raw
		}
	}
	return &model.MemoryRecord{
		Id:             r.Id,
		UserId:         r.UserId,
		Text:           r.Text,
		Category:       string(r.Category),
		Metadata:       metadata,
		EmbeddingValue: pgvector.NewVector(embedding),
		CreatedAt:      r.CreatedAt,
	}
}
