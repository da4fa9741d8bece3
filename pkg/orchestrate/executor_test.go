package orchestrate

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"mindmate-be/internal/entity"
	"mindmate-be/pkg/knowledge"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/orchestrate/insight"
	"mindmate-be/pkg/wearable"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeMemory struct {
	records []*entity.MemoryRecord
	err     error
	delay   time.Duration
}

func (f *fakeMemory) Search(ctx context.Context, userId uuid.UUID, query string, categories []string) ([]*entity.MemoryRecord, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.records, f.err
}

type fakeWearable struct {
	snapshot *wearable.WellnessSnapshot
	err      error
}

func (f *fakeWearable) GetHistory(ctx context.Context, userId uuid.UUID, days int) (*wearable.WellnessSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeWearable) GetRecentWellness(ctx context.Context, userId uuid.UUID) (*wearable.WellnessSnapshot, error) {
	return f.snapshot, f.err
}

type fakeProfile struct {
	user *entity.User
	err  error
}

func (f *fakeProfile) GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	return f.user, f.err
}

type fakeKnowledge struct {
	results []*knowledge.Result
	err     error
	calls   int
}

func (f *fakeKnowledge) Search(ctx context.Context, query string) ([]*knowledge.Result, error) {
	f.calls++
	return f.results, f.err
}

type fakeSelector struct {
	decision bool
}

func (f *fakeSelector) ShouldRetrieveKnowledgeBase(ctx context.Context, message string, recentHistory []llm.Message) bool {
	return f.decision
}

type fakeAnalyzer struct {
	result *insight.HealthInsight
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, snapshot *wearable.WellnessSnapshot, memoryContext string) *insight.HealthInsight {
	f.calls++
	return f.result
}

func snapshotWithDays() *wearable.WellnessSnapshot {
	return &wearable.WellnessSnapshot{
		Days: []wearable.DailySummary{
			{Date: "2026-08-20", SleepHours: 6.5, Steps: 4200, RestingHeartRate: 64},
		},
		FetchedAt: time.Now(),
	}
}

func newTestExecutor(mem *fakeMemory, wear *fakeWearable, prof *fakeProfile, know *fakeKnowledge, sel *fakeSelector, ana *fakeAnalyzer, timeout time.Duration) *Executor {
	return NewExecutor(mem, wear, prof, know, sel, ana, nopLogger{}, timeout)
}

func TestOrchestrateAllProvidersFail(t *testing.T) {
	boom := errors.New("network down")
	mem := &fakeMemory{err: boom}
	wear := &fakeWearable{err: boom}
	prof := &fakeProfile{err: boom}
	know := &fakeKnowledge{err: boom}
	ana := &fakeAnalyzer{}

	exec := newTestExecutor(mem, wear, prof, know, &fakeSelector{decision: false}, ana, 5*time.Second)
	bundle := exec.Orchestrate(context.Background(), uuid.New(), "hi", nil)

	if bundle == nil {
		t.Fatal("bundle is nil, want empty bundle")
	}
	if len(bundle.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want empty", bundle.ToolsUsed)
	}
	if bundle.HasContext() {
		t.Error("HasContext() = true, want false")
	}
	if ana.calls != 0 {
		t.Errorf("analyzer called %d times with no wearable history", ana.calls)
	}
}

func TestOrchestrateAnalyzerNeverRunsWithoutHistory(t *testing.T) {
	ana := &fakeAnalyzer{result: &insight.HealthInsight{Summary: "fine"}}
	wear := &fakeWearable{err: errors.New("not linked")}

	exec := newTestExecutor(&fakeMemory{}, wear, &fakeProfile{}, &fakeKnowledge{}, &fakeSelector{}, ana, 5*time.Second)
	exec.Orchestrate(context.Background(), uuid.New(), "how am I doing?", nil)

	if ana.calls != 0 {
		t.Errorf("analyzer called %d times, want 0 when wearable history is absent", ana.calls)
	}
}

func TestOrchestrateAnalyzerRunsWithHistory(t *testing.T) {
	ana := &fakeAnalyzer{result: &insight.HealthInsight{Summary: "sleep debt building", UrgencyLevel: "moderate"}}
	wear := &fakeWearable{snapshot: snapshotWithDays()}

	exec := newTestExecutor(&fakeMemory{}, wear, &fakeProfile{}, &fakeKnowledge{}, &fakeSelector{}, ana, 5*time.Second)
	bundle := exec.Orchestrate(context.Background(), uuid.New(), "how am I doing?", nil)

	if ana.calls != 1 {
		t.Fatalf("analyzer called %d times, want 1", ana.calls)
	}
	if bundle.Insight == nil {
		t.Fatal("bundle.Insight is nil")
	}
	if !containsTool(bundle.ToolsUsed, ToolHealthInsight) {
		t.Errorf("ToolsUsed = %v, want %s included", bundle.ToolsUsed, ToolHealthInsight)
	}
}

func TestOrchestrateKnowledgeOnlyWhenSelected(t *testing.T) {
	chunk := &entity.KnowledgeChunk{Content: "CBT is a structured talk therapy."}
	know := &fakeKnowledge{results: []*knowledge.Result{{Chunk: chunk, Source: "cbt_basics.md", Score: 0.8}}}

	exec := newTestExecutor(&fakeMemory{}, &fakeWearable{err: errors.New("down")}, &fakeProfile{}, know, &fakeSelector{decision: false}, &fakeAnalyzer{}, 5*time.Second)
	exec.Orchestrate(context.Background(), uuid.New(), "I had a rough day", nil)
	if know.calls != 0 {
		t.Fatalf("knowledge searched %d times with selector off, want 0", know.calls)
	}

	exec = newTestExecutor(&fakeMemory{}, &fakeWearable{err: errors.New("down")}, &fakeProfile{}, know, &fakeSelector{decision: true}, &fakeAnalyzer{}, 5*time.Second)
	bundle := exec.Orchestrate(context.Background(), uuid.New(), "What is CBT?", nil)
	if know.calls != 1 {
		t.Fatalf("knowledge searched %d times with selector on, want 1", know.calls)
	}
	if !containsTool(bundle.ToolsUsed, ToolKnowledgeBase) {
		t.Errorf("ToolsUsed = %v, want %s included", bundle.ToolsUsed, ToolKnowledgeBase)
	}
	if sources := bundle.Sources(); !reflect.DeepEqual(sources, []string{"cbt_basics.md"}) {
		t.Errorf("Sources() = %v, want [cbt_basics.md]", sources)
	}
}

// Losing the race against the global ceiling yields an empty bundle, not a
// partial one.
func TestOrchestrateGlobalTimeoutDiscardsEverything(t *testing.T) {
	mem := &fakeMemory{
		records: []*entity.MemoryRecord{{Text: "likes hiking"}},
		delay:   300 * time.Millisecond,
	}
	prof := &fakeProfile{user: &entity.User{Username: "sam"}}

	exec := newTestExecutor(mem, &fakeWearable{err: errors.New("down")}, prof, &fakeKnowledge{}, &fakeSelector{}, &fakeAnalyzer{}, 50*time.Millisecond)
	bundle := exec.Orchestrate(context.Background(), uuid.New(), "hi", nil)

	if len(bundle.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want empty on timeout", bundle.ToolsUsed)
	}
	if bundle.Profile != nil || len(bundle.Memories) != 0 {
		t.Error("timeout bundle carries partial results, want everything discarded")
	}
}

func TestOrchestrateToolsUsedOrder(t *testing.T) {
	mem := &fakeMemory{records: []*entity.MemoryRecord{{Text: "exam stress"}}}
	wear := &fakeWearable{snapshot: snapshotWithDays()}
	prof := &fakeProfile{user: &entity.User{Username: "sam"}}
	ana := &fakeAnalyzer{result: &insight.HealthInsight{Summary: "ok", UrgencyLevel: "low"}}

	exec := newTestExecutor(mem, wear, prof, &fakeKnowledge{}, &fakeSelector{}, ana, 5*time.Second)
	bundle := exec.Orchestrate(context.Background(), uuid.New(), "hello", nil)

	want := []string{ToolMemorySearch, ToolWearableHistory, ToolRecentWellness, ToolUserProfile, ToolHealthInsight}
	if !reflect.DeepEqual(bundle.ToolsUsed, want) {
		t.Errorf("ToolsUsed = %v, want %v", bundle.ToolsUsed, want)
	}
}

func containsTool(tools []string, name string) bool {
	for _, tool := range tools {
		if tool == name {
			return true
		}
	}
	return false
}
