package orchestrate

import (
	"context"

	"mindmate-be/internal/entity"
	"mindmate-be/pkg/knowledge"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/orchestrate/insight"
	"mindmate-be/pkg/wearable"

	"github.com/google/uuid"
)

// Signal provider boundaries. Each is independently failable; the executor
// degrades any failure to an absent signal.

type MemorySearcher interface {
	Search(ctx context.Context, userId uuid.UUID, query string, categories []string) ([]*entity.MemoryRecord, error)
}

type WearableService interface {
	GetHistory(ctx context.Context, userId uuid.UUID, days int) (*wearable.WellnessSnapshot, error)
	GetRecentWellness(ctx context.Context, userId uuid.UUID) (*wearable.WellnessSnapshot, error)
}

type ProfileFetcher interface {
	GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error)
}

type KnowledgeSearcher interface {
	Search(ctx context.Context, query string) ([]*knowledge.Result, error)
}

type ToolSelector interface {
	ShouldRetrieveKnowledgeBase(ctx context.Context, message string, recentHistory []llm.Message) bool
}

type InsightAnalyzer interface {
	Analyze(ctx context.Context, snapshot *wearable.WellnessSnapshot, memoryContext string) *insight.HealthInsight
}
