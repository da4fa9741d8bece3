package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindmate-be/internal/constant"
	"mindmate-be/internal/pkg/logger"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/orchestrate"
)

const (
	// Below this many characters of raw signal text, the model call is
	// skipped and the raw text passes through as the narrative.
	passthroughThreshold = 400

	// Hard ceiling on the narrative regardless of what the model returns.
	// This is the system's single point of context-size control.
	narrativeMaxLen = 900

	maxKeyPoints = 3
)

// ContextBrief is the summarizer's output, consumed exactly once by the
// response generator.
type ContextBrief struct {
	Narrative           string
	KeyPoints           []string
	SummarizationTimeMs int64
}

type Summarizer struct {
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewSummarizer(llmProvider llm.LLMProvider, log logger.ILogger) *Summarizer {
	return &Summarizer{
		llmProvider: llmProvider,
		log:         log,
	}
}

// Summarize condenses the gathered signals into a short prose brief.
// It never fails: a model error degrades to truncated raw passthrough.
func (s *Summarizer) Summarize(ctx context.Context, message string, bundle *orchestrate.SignalBundle, userName string) *ContextBrief {
	start := time.Now()

	raw := bundle.RenderSections()
	if raw == "" {
		return &ContextBrief{
			Narrative:           "",
			KeyPoints:           []string{},
			SummarizationTimeMs: time.Since(start).Milliseconds(),
		}
	}

	if len(raw) < passthroughThreshold {
		return &ContextBrief{
			Narrative:           capNarrative(stripSectionMarkers(raw)),
			KeyPoints:           []string{},
			SummarizationTimeMs: time.Since(start).Milliseconds(),
		}
	}

	prompt := fmt.Sprintf(constant.ContextSummaryPrompt, userName, message, raw)

	output, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(250),
	)
	if err != nil {
		s.log.Warn("brief", "summarizer model call failed, passing raw context through", map[string]interface{}{"error": err.Error()})
		return &ContextBrief{
			Narrative:           capNarrative(stripSectionMarkers(raw)),
			KeyPoints:           []string{},
			SummarizationTimeMs: time.Since(start).Milliseconds(),
		}
	}

	narrative, keyPoints := splitNarrative(output)
	return &ContextBrief{
		Narrative:           capNarrative(narrative),
		KeyPoints:           keyPoints,
		SummarizationTimeMs: time.Since(start).Milliseconds(),
	}
}

// splitNarrative separates prose from opportunistic "- " key-point lines.
func splitNarrative(output string) (string, []string) {
	var prose []string
	keyPoints := []string{}
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "- ") && len(keyPoints) < maxKeyPoints {
			keyPoints = append(keyPoints, strings.TrimPrefix(trimmed, "- "))
			continue
		}
		prose = append(prose, trimmed)
	}
	return strings.Join(prose, " "), keyPoints
}

// stripSectionMarkers removes the [SECTION] markers used in the raw
// rendering so they never reach the generation prompt verbatim.
func stripSectionMarkers(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			continue
		}
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, " ")
}

func capNarrative(narrative string) string {
	if len(narrative) <= narrativeMaxLen {
		return narrative
	}
	runes := []rune(narrative)
	if len(runes) <= narrativeMaxLen {
		return narrative
	}
	return string(runes[:narrativeMaxLen])
}
