package policy

import (
	"context"
	"errors"
	"testing"

	"mindmate-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestShouldRetrieveKnowledgeBase(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     bool
	}{
		{
			name:     "invoke true",
			response: `{"invoke_knowledge_search": true}`,
			want:     true,
		},
		{
			name:     "invoke false",
			response: `{"invoke_knowledge_search": false}`,
			want:     false,
		},
		{
			name:     "json wrapped in prose",
			response: "Decision: {\"invoke_knowledge_search\": true} as requested.",
			want:     true,
		},
		{
			// Fail closed: retrieval is enrichment, never a dependency.
			name: "provider error defaults to false",
			err:  errors.New("model unavailable"),
			want: false,
		},
		{
			name:     "garbage output defaults to false",
			response: "I think you should search the knowledge base!",
			want:     false,
		},
		{
			name:     "empty output defaults to false",
			response: "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(&fakeLLM{response: tt.response, err: tt.err}, nopLogger{})
			got := s.ShouldRetrieveKnowledgeBase(context.Background(), "What is CBT?", nil)
			if got != tt.want {
				t.Errorf("ShouldRetrieveKnowledgeBase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatRecentHistory(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}
	got := formatRecentHistory(history)
	want := "assistant: second\nuser: third"
	if got != want {
		t.Errorf("formatRecentHistory() = %q, want %q (last two turns only)", got, want)
	}

	if got := formatRecentHistory(nil); got != "(no prior messages)" {
		t.Errorf("formatRecentHistory(nil) = %q", got)
	}
}
