package policy

import (
	"context"
	"fmt"
	"strings"

	"mindmate-be/internal/constant"
	"mindmate-be/internal/pkg/logger"
	"mindmate-be/pkg/jsonutil"
	"mindmate-be/pkg/llm"
)

// Selector decides whether knowledge-base retrieval is worth invoking for a
// message. One binary decision, one cheap model call. Any failure means
// "don't retrieve": the knowledge base is enrichment, never a dependency.
type Selector struct {
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewSelector(llmProvider llm.LLMProvider, log logger.ILogger) *Selector {
	return &Selector{
		llmProvider: llmProvider,
		log:         log,
	}
}

type invokeDecision struct {
	InvokeKnowledgeSearch bool `json:"invoke_knowledge_search"`
}

func (s *Selector) ShouldRetrieveKnowledgeBase(ctx context.Context, message string, recentHistory []llm.Message) bool {
	prompt := fmt.Sprintf(constant.ToolSelectionPrompt, formatRecentHistory(recentHistory), message)

	raw, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(50),
	)
	if err != nil {
		s.log.Warn("policy", "tool selection call failed, defaulting to no retrieval", map[string]interface{}{"error": err.Error()})
		return false
	}

	var decision invokeDecision
	if !jsonutil.Decode(raw, &decision) {
		s.log.Warn("policy", "tool selection output not parseable, defaulting to no retrieval", map[string]interface{}{"raw": raw})
		return false
	}

	return decision.InvokeKnowledgeSearch
}

// formatRecentHistory renders the last two turns for disambiguation.
func formatRecentHistory(history []llm.Message) string {
	if len(history) == 0 {
		return "(no prior messages)"
	}
	if len(history) > 2 {
		history = history[len(history)-2:]
	}
	var sb strings.Builder
	for _, turn := range history {
		sb.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
	}
	return strings.TrimRight(sb.String(), "\n")
}
