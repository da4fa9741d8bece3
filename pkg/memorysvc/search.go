package memorysvc

import (
	"context"
	"fmt"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	// Similarity floor for memory recall. Below this the record is noise.
	defaultThreshold = 0.45
	defaultLimit     = 5
)

// Searcher retrieves the durable facts most relevant to a message.
type Searcher struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewSearcher(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider) *Searcher {
	return &Searcher{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

// Search embeds the query and runs a cosine search scoped to the user.
// Passing nil categories searches all of them.
func (s *Searcher) Search(ctx context.Context, userId uuid.UUID, query string, categories []string) ([]*entity.MemoryRecord, error) {
	res, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed memory query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.MemoryRecordRepository().SearchSimilarWithScore(
		ctx,
		res.Embedding.Values,
		defaultLimit,
		userId,
		defaultThreshold,
		categories,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search memories: %w", err)
	}

	records := make([]*entity.MemoryRecord, len(scored))
	for i, sc := range scored {
		records[i] = sc.Record
	}
	return records, nil
}

// Append embeds and persists a single record. Used by the async writer
// and by the seed path; the chat request path never calls this directly.
func Append(ctx context.Context, uow unitofwork.UnitOfWork, embeddingProvider embedding.EmbeddingProvider, record *entity.MemoryRecord) error {
	res, err := embeddingProvider.Generate(record.Text, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return fmt.Errorf("failed to embed memory text: %w", err)
	}
	return uow.MemoryRecordRepository().Create(ctx, record, res.Embedding.Values)
}
