package implementation

import (
	"context"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/mapper"
	"mindmate-be/internal/model"
	"mindmate-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type MemoryRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryRecordMapper
}

func NewMemoryRecordRepository(db *gorm.DB) contract.MemoryRecordRepository {
	return &MemoryRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryRecordMapper(),
	}
}

func (r *MemoryRecordRepositoryImpl) Create(ctx context.Context, record *entity.MemoryRecord, embedding []float32) error {
	m := r.mapper.ToModel(record, embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

type memoryRecordWithSimilarity struct {
	model.MemoryRecord
	Similarity float64
}

func (r *MemoryRecordRepositoryImpl) SearchSimilarWithScore(
	ctx context.Context,
	embedding []float32,
	limit int,
	userId uuid.UUID,
	threshold float64,
	categories []string,
) ([]*contract.ScoredMemoryRecord, error) {
	queryVector := pgvector.NewVector(embedding)

	var results []memoryRecordWithSimilarity
	query := r.db.WithContext(ctx).
		Table("memory_records").
		Select("memory_records.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("user_id = ?", userId).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold)

	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredMemoryRecord, len(results))
	for i, res := range results {
		record := r.mapper.ToEntity(&res.MemoryRecord)
		record.RelevanceScore = res.Similarity
		scored[i] = &contract.ScoredMemoryRecord{
			Record:     record,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
