package knowledge

import (
	"context"
	"fmt"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/pkg/embedding"
)

const (
	// Relevance floor: chunks scoring below this are dropped rather than
	// padding the prompt with weak matches.
	relevanceThreshold = 0.5
	maxChunks          = 4
)

// Searcher retrieves knowledge base passages for a message. The knowledge
// base is shared across users, so no user scoping applies here.
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

// Result is one retrieved passage plus where it came from.
type Result struct {
	Chunk  *entity.KnowledgeChunk
	Source string
	Score  float64
}

func (s *Searcher) Search(ctx context.Context, query string) ([]*Result, error) {
	res, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed knowledge query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeChunkRepository().SearchSimilarWithScore(
		ctx,
		res.Embedding.Values,
		maxChunks,
		relevanceThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}

	results := make([]*Result, len(scored))
	for i, sc := range scored {
		results[i] = &Result{
			Chunk:  sc.Chunk,
			Source: sc.Chunk.Source,
			Score:  sc.Similarity,
		}
	}
	return results, nil
}
