package orchestrate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mindmate-be/internal/pkg/logger"
	"mindmate-be/pkg/llm"

	"github.com/google/uuid"
)

const wearableHistoryDays = 7

// Executor runs the always-on signal providers and the tool-selection
// decision concurrently, then the conditional knowledge retrieval and
// derived-signal analysis, under one global wall-clock ceiling.
type Executor struct {
	memory    MemorySearcher
	wearable  WearableService
	profile   ProfileFetcher
	knowledge KnowledgeSearcher
	selector  ToolSelector
	analyzer  InsightAnalyzer
	log       logger.ILogger
	timeout   time.Duration
}

func NewExecutor(
	memory MemorySearcher,
	wearable WearableService,
	profile ProfileFetcher,
	knowledge KnowledgeSearcher,
	selector ToolSelector,
	analyzer InsightAnalyzer,
	log logger.ILogger,
	timeout time.Duration,
) *Executor {
	return &Executor{
		memory:    memory,
		wearable:  wearable,
		profile:   profile,
		knowledge: knowledge,
		selector:  selector,
		analyzer:  analyzer,
		log:       log,
		timeout:   timeout,
	}
}

// Orchestrate gathers every available signal for one chat turn. It always
// returns a bundle: losing the race against the global ceiling yields an
// empty bundle, never an error. In-flight provider calls are abandoned on
// timeout and their late results discarded.
func (e *Executor) Orchestrate(ctx context.Context, userId uuid.UUID, message string, history []llm.Message) *SignalBundle {
	start := time.Now()

	done := make(chan *SignalBundle, 1)
	go func() {
		done <- e.run(ctx, userId, message, history)
	}()

	select {
	case bundle := <-done:
		bundle.ExecutionTimeMs = time.Since(start).Milliseconds()
		return bundle
	case <-time.After(e.timeout):
		elapsed := time.Since(start).Milliseconds()
		e.log.Warn("orchestrate", "global timeout exceeded, degrading to empty bundle", map[string]interface{}{
			"user_id":    userId.String(),
			"timeout_ms": e.timeout.Milliseconds(),
		})
		return EmptyBundle(elapsed)
	}
}

// settle runs one provider, converting any error or panic into an absent
// signal. One member's failure never touches its siblings.
func (e *Executor) settle(name string, userId uuid.UUID, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("orchestrate", "signal provider panicked", map[string]interface{}{
				"provider": name,
				"user_id":  userId.String(),
				"panic":    fmt.Sprintf("%v", r),
			})
		}
	}()
	if err := fn(); err != nil {
		e.log.Warn("orchestrate", "signal provider failed, degrading to absent", map[string]interface{}{
			"provider": name,
			"user_id":  userId.String(),
			"error":    err.Error(),
		})
	}
}

func (e *Executor) run(ctx context.Context, userId uuid.UUID, message string, history []llm.Message) *SignalBundle {
	bundle := &SignalBundle{ToolsUsed: []string{}}

	var retrieveKnowledge bool

	// Always-on fan-out: four signal fetches plus the tool-selection
	// decision, settled independently.
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		e.settle("memory_search", userId, func() error {
			memories, err := e.memory.Search(ctx, userId, message, nil)
			if err != nil {
				return err
			}
			bundle.Memories = memories
			return nil
		})
	}()

	go func() {
		defer wg.Done()
		e.settle("wearable_history", userId, func() error {
			snapshot, err := e.wearable.GetHistory(ctx, userId, wearableHistoryDays)
			if err != nil {
				return err
			}
			bundle.WearableHistory = snapshot
			return nil
		})
	}()

	go func() {
		defer wg.Done()
		e.settle("recent_wellness", userId, func() error {
			snapshot, err := e.wearable.GetRecentWellness(ctx, userId)
			if err != nil {
				return err
			}
			bundle.RecentWellness = snapshot
			return nil
		})
	}()

	go func() {
		defer wg.Done()
		e.settle("user_profile", userId, func() error {
			profile, err := e.profile.GetUser(ctx, userId)
			if err != nil {
				return err
			}
			bundle.Profile = profile
			return nil
		})
	}()

	go func() {
		defer wg.Done()
		e.settle("tool_selection", userId, func() error {
			retrieveKnowledge = e.selector.ShouldRetrieveKnowledgeBase(ctx, message, history)
			return nil
		})
	}()

	wg.Wait()

	// Conditional knowledge retrieval follows the fan-out group: it is
	// comparatively expensive and only fetched when the policy asked for it.
	if retrieveKnowledge {
		e.settle("knowledge_base", userId, func() error {
			results, err := e.knowledge.Search(ctx, message)
			if err != nil {
				return err
			}
			bundle.Knowledge = results
			return nil
		})
	}

	// Derived signal strictly follows wearable history (data dependency).
	if bundle.WearableHistory.HasHistory() {
		bundle.Insight = e.analyzer.Analyze(ctx, bundle.WearableHistory, bundle.MemoryContextText())
	}

	e.recordToolsUsed(bundle)
	return bundle
}

// recordToolsUsed lists the providers that contributed data, in pipeline
// order.
func (e *Executor) recordToolsUsed(bundle *SignalBundle) {
	if len(bundle.Memories) > 0 {
		bundle.ToolsUsed = append(bundle.ToolsUsed, ToolMemorySearch)
	}
	if bundle.WearableHistory.HasHistory() {
		bundle.ToolsUsed = append(bundle.ToolsUsed, ToolWearableHistory)
	}
	if bundle.RecentWellness.HasHistory() {
		bundle.ToolsUsed = append(bundle.ToolsUsed, ToolRecentWellness)
	}
	if bundle.Profile != nil {
		bundle.ToolsUsed = append(bundle.ToolsUsed, ToolUserProfile)
	}
	if len(bundle.Knowledge) > 0 {
		bundle.ToolsUsed = append(bundle.ToolsUsed, ToolKnowledgeBase)
	}
	if bundle.Insight != nil {
		bundle.ToolsUsed = append(bundle.ToolsUsed, ToolHealthInsight)
	}
}
