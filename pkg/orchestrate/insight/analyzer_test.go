package insight

import (
	"context"
	"errors"
	"testing"

	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/wearable"
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
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func lowSleepSnapshot() *wearable.WellnessSnapshot {
	days := []wearable.DailySummary{
		{Date: "2026-08-19", SleepHours: 3.1, Steps: 2100, RestingHeartRate: 78},
		{Date: "2026-08-20", SleepHours: 2.8, Steps: 1800, RestingHeartRate: 81},
	}
	return &wearable.WellnessSnapshot{
		Days:       days,
		Indicators: wearable.DeriveIndicators(days),
	}
}

func TestAnalyzeParsesStructuredOutput(t *testing.T) {
	response := `Here is the analysis:
{
  "summary": "Severe sleep debt over the window.",
  "mental_health_correlation": "Short sleep strongly correlates with low mood.",
  "recommendations": ["aim for a consistent bedtime", "short walk after lunch"],
  "urgency_level": "high",
  "patterns": ["under 4h sleep on every night"]
}`
	a := NewAnalyzer(&fakeLLM{response: response}, nopLogger{})

	got := a.Analyze(context.Background(), lowSleepSnapshot(), "mentioned exam stress")
	if got == nil {
		t.Fatal("Analyze() = nil, want parsed insight")
	}
	if got.UrgencyLevel != "high" {
		t.Errorf("UrgencyLevel = %q, want high", got.UrgencyLevel)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(got.Recommendations))
	}
}

func TestAnalyzeDegradesToNil(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "provider error", err: errors.New("rate limited")},
		{name: "prose only", response: "The user seems tired."},
		{name: "empty summary", response: `{"summary": "", "urgency_level": "low"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(&fakeLLM{response: tt.response, err: tt.err}, nopLogger{})
			if got := a.Analyze(context.Background(), lowSleepSnapshot(), ""); got != nil {
				t.Errorf("Analyze() = %+v, want nil", got)
			}
		})
	}
}

func TestAnalyzeSkipsEmptySnapshot(t *testing.T) {
	provider := &fakeLLM{response: `{"summary": "x"}`}
	a := NewAnalyzer(provider, nopLogger{})

	if got := a.Analyze(context.Background(), &wearable.WellnessSnapshot{}, ""); got != nil {
		t.Errorf("Analyze(empty snapshot) = %+v, want nil", got)
	}
	if got := a.Analyze(context.Background(), nil, ""); got != nil {
		t.Errorf("Analyze(nil) = %+v, want nil", got)
	}
	if provider.calls != 0 {
		t.Errorf("model called %d times for empty history, want 0", provider.calls)
	}
}

func TestAnalyzeNormalizesUnknownUrgency(t *testing.T) {
	response := `{"summary": "ok", "urgency_level": "critical"}`
	a := NewAnalyzer(&fakeLLM{response: response}, nopLogger{})

	got := a.Analyze(context.Background(), lowSleepSnapshot(), "")
	if got == nil {
		t.Fatal("Analyze() = nil")
	}
	if got.UrgencyLevel != "moderate" {
		t.Errorf("UrgencyLevel = %q, want moderate fallback", got.UrgencyLevel)
	}
}
