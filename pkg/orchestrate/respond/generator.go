package respond

import (
	"context"
	"fmt"

	"mindmate-be/internal/constant"
	"mindmate-be/internal/pkg/logger"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/orchestrate/brief"
)

const maxHistoryTurns = 4

// Generator produces the final reply from the brief, never the raw signals.
// This is the one component whose failure surfaces to the caller: every
// upstream enrichment is optional, but replying is mandatory.
type Generator struct {
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		log:         log,
	}
}

// Generate builds the bounded prompt and calls the model. When the safety
// gate flagged concern, the crisis-resources block is appended verbatim
// after generation, not left to generation fidelity.
func (g *Generator) Generate(ctx context.Context, message string, contextBrief *brief.ContextBrief, recentHistory []llm.Message, concern bool) (string, error) {
	system := constant.ResponsePersonaPrompt
	if contextBrief != nil && contextBrief.Narrative != "" {
		system += "\n\nContext about this user:\n" + contextBrief.Narrative
		for _, point := range contextBrief.KeyPoints {
			system += "\n- " + point
		}
	}

	messages := make([]llm.Message, 0, maxHistoryTurns+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})

	history := recentHistory
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	reply, err := g.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(400),
	)
	if err != nil {
		return "", fmt.Errorf("response generation failed: %w", err)
	}

	if concern {
		reply += constant.CrisisResourcesFooter
	}

	return reply, nil
}
