package orchestrate

import (
	"fmt"
	"strings"

	"mindmate-be/internal/entity"
	"mindmate-be/pkg/knowledge"
	"mindmate-be/pkg/orchestrate/insight"
	"mindmate-be/pkg/wearable"
)

// Tool names recorded in SignalBundle.ToolsUsed, in pipeline order.
const (
	ToolMemorySearch    = "memorySearch"
	ToolWearableHistory = "fitbitHistory"
	ToolRecentWellness  = "recentWellness"
	ToolUserProfile     = "userProfile"
	ToolKnowledgeBase   = "knowledgeBase"
	ToolHealthInsight   = "healthInsight"
)

// SignalBundle accumulates everything one orchestration run gathered.
// It is private to the run while being populated and read-only once handed
// to the summarizer. Never cached across turns.
type SignalBundle struct {
	Memories        []*entity.MemoryRecord
	WearableHistory *wearable.WellnessSnapshot
	RecentWellness  *wearable.WellnessSnapshot
	Profile         *entity.User
	Knowledge       []*knowledge.Result
	Insight         *insight.HealthInsight

	// ToolsUsed lists the providers that actually returned data, in
	// pipeline order.
	ToolsUsed       []string
	ExecutionTimeMs int64
}

// EmptyBundle is what a global timeout yields: all signals absent.
func EmptyBundle(elapsedMs int64) *SignalBundle {
	return &SignalBundle{
		ToolsUsed:       []string{},
		ExecutionTimeMs: elapsedMs,
	}
}

// HasContext reports whether any signal beyond the bare profile was
// gathered.
func (b *SignalBundle) HasContext() bool {
	return len(b.Memories) > 0 ||
		b.WearableHistory.HasHistory() ||
		b.RecentWellness.HasHistory() ||
		len(b.Knowledge) > 0 ||
		b.Insight != nil
}

// UsedWearable reports whether any wearable-backed signal contributed.
func (b *SignalBundle) UsedWearable() bool {
	return b.WearableHistory.HasHistory() || b.RecentWellness.HasHistory()
}

// Sources returns the distinct knowledge-base sources that contributed,
// in retrieval order.
func (b *SignalBundle) Sources() []string {
	sources := []string{}
	seen := make(map[string]bool)
	for _, res := range b.Knowledge {
		if res.Source != "" && !seen[res.Source] {
			seen[res.Source] = true
			sources = append(sources, res.Source)
		}
	}
	return sources
}

// RenderSections flattens the bundle into marked text sections for the
// summarizer. The section markers themselves must never survive into the
// summarizer's output.
func (b *SignalBundle) RenderSections() string {
	var sb strings.Builder

	if b.Profile != nil {
		sb.WriteString("[PROFILE]\n")
		sb.WriteString(fmt.Sprintf("Username: %s\n", b.Profile.Username))
		sb.WriteString("\n")
	}

	if len(b.Memories) > 0 {
		sb.WriteString("[MEMORIES]\n")
		for _, mem := range b.Memories {
			sb.WriteString(fmt.Sprintf("- (%s) %s\n", mem.Category, mem.Text))
		}
		sb.WriteString("\n")
	}

	if b.RecentWellness.HasHistory() {
		sb.WriteString("[RECENT WELLNESS]\n")
		ind := b.RecentWellness.Indicators
		sb.WriteString(fmt.Sprintf("Stress: %s, Anxiety: %s, Fatigue: %s\n", ind.Stress, ind.Anxiety, ind.Fatigue))
		for _, day := range b.RecentWellness.Days {
			sb.WriteString(fmt.Sprintf("- %s: %.1fh sleep, %d steps, resting HR %d\n",
				day.Date, day.SleepHours, day.Steps, day.RestingHeartRate))
		}
		sb.WriteString("\n")
	}

	if b.Insight != nil {
		sb.WriteString("[HEALTH INSIGHT]\n")
		sb.WriteString(b.Insight.Summary + "\n")
		if b.Insight.MentalHealthCorrelation != "" {
			sb.WriteString(b.Insight.MentalHealthCorrelation + "\n")
		}
		sb.WriteString(fmt.Sprintf("Urgency: %s\n", b.Insight.UrgencyLevel))
		sb.WriteString("\n")
	}

	if len(b.Knowledge) > 0 {
		sb.WriteString("[KNOWLEDGE]\n")
		for _, res := range b.Knowledge {
			sb.WriteString(fmt.Sprintf("- %s\n", res.Chunk.Content))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// MemoryContextText flattens recalled memories into free text for the
// derived-signal analyzer.
func (b *SignalBundle) MemoryContextText() string {
	if len(b.Memories) == 0 {
		return ""
	}
	lines := make([]string, len(b.Memories))
	for i, mem := range b.Memories {
		lines[i] = "- " + mem.Text
	}
	return strings.Join(lines, "\n")
}
