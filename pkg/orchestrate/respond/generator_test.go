package respond

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mindmate-be/internal/constant"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/orchestrate/brief"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recordingLLM struct {
	response string
	err      error
	messages []llm.Message
}

func (r *recordingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	r.messages = history
	return r.response, r.err
}

func (r *recordingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return r.response, r.err
}

func TestGenerateAppendsCrisisFooterOnConcern(t *testing.T) {
	provider := &recordingLLM{response: "That sounds really heavy."}
	g := NewGenerator(provider, nopLogger{})

	reply, err := g.Generate(context.Background(), "everything feels hopeless", nil, nil, true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(reply, "That sounds really heavy.") {
		t.Errorf("reply = %q, want model output first", reply)
	}
	if !strings.HasSuffix(reply, constant.CrisisResourcesFooter) {
		t.Error("reply missing crisis resources footer on concern")
	}
}

func TestGenerateNoFooterWithoutConcern(t *testing.T) {
	provider := &recordingLLM{response: "Glad to hear it."}
	g := NewGenerator(provider, nopLogger{})

	reply, err := g.Generate(context.Background(), "had a good day", nil, nil, false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "Glad to hear it." {
		t.Errorf("reply = %q, want bare model output", reply)
	}
}

func TestGeneratePropagatesModelError(t *testing.T) {
	provider := &recordingLLM{err: errors.New("connection refused")}
	g := NewGenerator(provider, nopLogger{})

	if _, err := g.Generate(context.Background(), "hi", nil, nil, false); err == nil {
		t.Fatal("Generate() error = nil, want propagated failure")
	}
}

func TestGenerateTruncatesHistory(t *testing.T) {
	provider := &recordingLLM{response: "ok"}
	g := NewGenerator(provider, nopLogger{})

	history := []llm.Message{
		{Role: "user", Content: "turn 1"},
		{Role: "assistant", Content: "turn 2"},
		{Role: "user", Content: "turn 3"},
		{Role: "assistant", Content: "turn 4"},
		{Role: "user", Content: "turn 5"},
		{Role: "assistant", Content: "turn 6"},
	}
	if _, err := g.Generate(context.Background(), "current", nil, history, false); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// system + 4 most recent turns + current message
	if len(provider.messages) != maxHistoryTurns+2 {
		t.Fatalf("sent %d messages, want %d", len(provider.messages), maxHistoryTurns+2)
	}
	if provider.messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", provider.messages[0].Role)
	}
	if provider.messages[1].Content != "turn 3" {
		t.Errorf("oldest kept turn = %q, want turn 3", provider.messages[1].Content)
	}
	last := provider.messages[len(provider.messages)-1]
	if last.Role != "user" || last.Content != "current" {
		t.Errorf("final message = %+v, want the current user message", last)
	}
}

func TestGenerateInjectsBriefIntoSystemPrompt(t *testing.T) {
	provider := &recordingLLM{response: "ok"}
	g := NewGenerator(provider, nopLogger{})

	contextBrief := &brief.ContextBrief{
		Narrative: "Sam has been sleeping badly.",
		KeyPoints: []string{"exam stress"},
	}
	if _, err := g.Generate(context.Background(), "hi", contextBrief, nil, false); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	system := provider.messages[0].Content
	if !strings.Contains(system, "Sam has been sleeping badly.") {
		t.Error("system prompt missing brief narrative")
	}
	if !strings.Contains(system, "- exam stress") {
		t.Error("system prompt missing key points")
	}
}
