package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"mindmate-be/internal/constant"
	"mindmate-be/internal/pkg/logger"
	"mindmate-be/pkg/jsonutil"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/wearable"
)

// HealthInsight is the fixed-shape secondary signal derived from wearable
// history. Absent (nil) whenever the model call or parse fails.
type HealthInsight struct {
	Summary                 string   `json:"summary"`
	MentalHealthCorrelation string   `json:"mental_health_correlation"`
	Recommendations         []string `json:"recommendations"`
	UrgencyLevel            string   `json:"urgency_level"`
	Patterns                []string `json:"patterns"`
}

type Analyzer struct {
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewAnalyzer(llmProvider llm.LLMProvider, log logger.ILogger) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
		log:         log,
	}
}

// Analyze produces the health/mood correlation signal from a wellness
// snapshot. It never returns an error: a malformed or failed model response
// degrades to nil so the turn continues without the derived signal.
func (a *Analyzer) Analyze(ctx context.Context, snapshot *wearable.WellnessSnapshot, memoryContext string) *HealthInsight {
	if !snapshot.HasHistory() {
		return nil
	}

	data, err := json.MarshalIndent(struct {
		Days       []wearable.DailySummary `json:"days"`
		Indicators wearable.Indicators     `json:"indicators"`
	}{snapshot.Days, snapshot.Indicators}, "", "  ")
	if err != nil {
		a.log.Warn("insight", "failed to serialize wellness snapshot", map[string]interface{}{"error": err.Error()})
		return nil
	}

	memorySection := ""
	if memoryContext != "" {
		memorySection = fmt.Sprintf("\nKnown user context:\n%s\n", memoryContext)
	}

	prompt := fmt.Sprintf(constant.HealthInsightPrompt, len(snapshot.Days), string(data), memorySection)

	raw, err := a.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		a.log.Warn("insight", "analyzer model call failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	var result HealthInsight
	if !jsonutil.Decode(raw, &result) {
		a.log.Warn("insight", "analyzer output not parseable", map[string]interface{}{"raw_length": len(raw)})
		return nil
	}
	if result.Summary == "" {
		return nil
	}

	switch result.UrgencyLevel {
	case "low", "moderate", "high":
	default:
		result.UrgencyLevel = "moderate"
	}

	return &result
}
